package app

import (
	"context"

	"atlas_travel/internal/adapters/observability"
	"atlas_travel/internal/domain"
	"atlas_travel/internal/shared"
)

// InquiryForm is the single-step contact/inquiry form. Phone and package
// selection are optional.
type InquiryForm struct {
	Name      string `validate:"required"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"omitempty,phone"`
	PackageID string
	Message   string `validate:"required"`
}

// InquiryFlow submits a package inquiry, or a contact message in the
// generic variant. One POST per submission, never retried.
type InquiryFlow struct {
	api     domain.InquiryAPI
	contact bool

	form    InquiryForm
	errs    map[string]string
	message string
	done    *domain.Inquiry
}

func NewInquiryFlow(api domain.InquiryAPI) *InquiryFlow {
	return &InquiryFlow{api: api, errs: map[string]string{}}
}

// NewContactFlow is the generic contact form variant; it posts to /contact
// and carries no package reference.
func NewContactFlow(api domain.InquiryAPI) *InquiryFlow {
	return &InquiryFlow{api: api, contact: true, errs: map[string]string{}}
}

// PreselectPackage pre-fills the package selector.
func (f *InquiryFlow) PreselectPackage(id string) { f.form.PackageID = id }

func (f *InquiryFlow) SetName(v string)     { f.form.Name = v; delete(f.errs, "Name") }
func (f *InquiryFlow) SetEmail(v string)    { f.form.Email = v; delete(f.errs, "Email") }
func (f *InquiryFlow) SetPhone(v string)    { f.form.Phone = v; delete(f.errs, "Phone") }
func (f *InquiryFlow) SetPackage(id string) { f.form.PackageID = id }
func (f *InquiryFlow) SetMessage(v string)  { f.form.Message = v; delete(f.errs, "Message") }

func (f *InquiryFlow) FieldErrors() map[string]string { return f.errs }
func (f *InquiryFlow) Message() string                { return f.message }

func (f *InquiryFlow) Inquiry() (domain.Inquiry, bool) {
	if f.done == nil {
		return domain.Inquiry{}, false
	}
	return *f.done, true
}

func (f *InquiryFlow) Submit(ctx context.Context) (domain.Inquiry, error) {
	if errs := shared.ValidateStruct(f.form); len(errs) > 0 {
		for k, v := range errs {
			f.errs[k] = v
		}
		observability.ObserveFlow("inquiry", "rejected")
		return domain.Inquiry{}, &domain.ValidationError{Fields: errs}
	}

	ni := domain.NewInquiry{
		Name:    f.form.Name,
		Email:   f.form.Email,
		Message: f.form.Message,
	}
	if f.form.Phone != "" {
		p := f.form.Phone
		ni.Phone = &p
	}
	if !f.contact && f.form.PackageID != "" {
		id := f.form.PackageID
		ni.PackageID = &id
	}

	send := f.api.CreateInquiry
	if f.contact {
		send = f.api.CreateContact
	}
	inq, err := send(ctx, ni)
	if err != nil {
		for k, v := range domain.FieldErrors(err) {
			f.errs[k] = v
		}
		f.message = userMessage(err, "Failed to send your message. Please try again.")
		observability.ObserveFlow("inquiry", "error")
		return domain.Inquiry{}, err
	}

	f.done = &inq
	f.message = ""
	observability.ObserveFlow("inquiry", "ok")
	return inq, nil
}
