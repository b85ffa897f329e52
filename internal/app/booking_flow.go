package app

import (
	"context"
	"errors"

	"atlas_travel/internal/adapters/observability"
	"atlas_travel/internal/domain"
	"atlas_travel/internal/shared"
)

type BookingStep int

const (
	StepPersonal BookingStep = iota + 1
	StepTravel
)

// BookingForm is the wizard's in-memory form state. Step 1 owns the
// personal fields, step 2 the travel fields.
type BookingForm struct {
	CustomerName    string `validate:"required"`
	Email           string `validate:"required,email"`
	Phone           string `validate:"required,phone"`
	TravelDate      string `validate:"required,datetime=2006-01-02"`
	Travelers       int    `validate:"required,min=1"`
	SpecialRequests string
}

var (
	personalFields = []string{"CustomerName", "Email", "Phone"}
	travelFields   = []string{"TravelDate", "Travelers"}
)

// BookingFlow is the two-step booking wizard for one package. Advancing and
// submitting are blocked while the current step's fields fail validation;
// field errors clear as the corresponding field is edited. Submission makes
// exactly one POST, never retried.
type BookingFlow struct {
	api       domain.BookingAPI
	pkg       domain.Package
	onSuccess func(domain.Booking)

	step    BookingStep
	form    BookingForm
	errs    map[string]string
	message string
	done    *domain.Booking
}

func NewBookingFlow(api domain.BookingAPI, pkg domain.Package, onSuccess func(domain.Booking)) *BookingFlow {
	return &BookingFlow{
		api:       api,
		pkg:       pkg,
		onSuccess: onSuccess,
		step:      StepPersonal,
		form:      BookingForm{Travelers: 1},
		errs:      map[string]string{},
	}
}

func (f *BookingFlow) Step() BookingStep { return f.step }

// FieldErrors is the per-field error map rendered next to the inputs.
func (f *BookingFlow) FieldErrors() map[string]string { return f.errs }

// Message is the inline (non-field) submission error, if any.
func (f *BookingFlow) Message() string { return f.message }

// Booking returns the created booking once Submit has succeeded.
func (f *BookingFlow) Booking() (domain.Booking, bool) {
	if f.done == nil {
		return domain.Booking{}, false
	}
	return *f.done, true
}

func (f *BookingFlow) SetCustomerName(v string) { f.form.CustomerName = v; delete(f.errs, "CustomerName") }
func (f *BookingFlow) SetEmail(v string)        { f.form.Email = v; delete(f.errs, "Email") }
func (f *BookingFlow) SetPhone(v string)        { f.form.Phone = v; delete(f.errs, "Phone") }
func (f *BookingFlow) SetTravelDate(v string)   { f.form.TravelDate = v; delete(f.errs, "TravelDate") }
func (f *BookingFlow) SetTravelers(n int)       { f.form.Travelers = n; delete(f.errs, "Travelers") }

func (f *BookingFlow) SetSpecialRequests(v string) { f.form.SpecialRequests = v }

// TotalPrice is the derived preview: package price times travelers.
func (f *BookingFlow) TotalPrice() float64 {
	return f.pkg.Price * float64(f.form.Travelers)
}

// Next advances from the personal step. It is blocked exactly while
// customer name, email or phone is empty or fails format validation.
func (f *BookingFlow) Next() bool {
	if f.step != StepPersonal {
		return true
	}
	if errs := f.validate(personalFields); len(errs) > 0 {
		f.mergeErrs(errs)
		return false
	}
	f.step = StepTravel
	return true
}

func (f *BookingFlow) Back() {
	if f.step == StepTravel {
		f.step = StepPersonal
	}
}

// Submit validates the travel step, derives totalPrice, and posts the
// booking. Server field errors land in the same per-field slots as client
// validation; other failures surface through Message.
func (f *BookingFlow) Submit(ctx context.Context) (domain.Booking, error) {
	if f.step != StepTravel {
		return domain.Booking{}, errors.New("booking: travel details step not reached")
	}
	if errs := f.validate(travelFields); len(errs) > 0 {
		f.mergeErrs(errs)
		observability.ObserveFlow("booking", "rejected")
		return domain.Booking{}, &domain.ValidationError{Fields: errs}
	}

	nb := domain.NewBooking{
		PackageID:    f.pkg.ID,
		CustomerName: f.form.CustomerName,
		Email:        f.form.Email,
		Phone:        f.form.Phone,
		TravelDate:   f.form.TravelDate,
		Travelers:    f.form.Travelers,
		TotalPrice:   f.TotalPrice(),
	}
	if f.form.SpecialRequests != "" {
		sr := f.form.SpecialRequests
		nb.SpecialRequests = &sr
	}

	b, err := f.api.CreateBooking(ctx, nb)
	if err != nil {
		f.mergeErrs(domain.FieldErrors(err))
		f.message = userMessage(err, "Failed to submit booking. Please try again.")
		observability.ObserveFlow("booking", "error")
		return domain.Booking{}, err
	}

	f.done = &b
	f.message = ""
	observability.ObserveFlow("booking", "ok")
	if f.onSuccess != nil {
		f.onSuccess(b)
	}
	return b, nil
}

func (f *BookingFlow) validate(fields []string) map[string]string {
	all := shared.ValidateStruct(f.form)
	out := map[string]string{}
	for _, k := range fields {
		if msg, ok := all[k]; ok {
			out[k] = msg
		}
	}
	return out
}

func (f *BookingFlow) mergeErrs(errs map[string]string) {
	for k, v := range errs {
		f.errs[k] = v
	}
}
