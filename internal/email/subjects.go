package email

const (
	subjectBookingConfirmedFmt = "Your booking is confirmed (%s)"
	subjectBookingCancelledFmt = "Your booking %s has been cancelled"
)
