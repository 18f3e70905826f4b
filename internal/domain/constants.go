package domain

// Default values
const (
	DefaultDurationMinutes = 30
	DefaultRejectionReason = "No reason provided"
	DefaultTimezone        = "Asia/Kolkata"
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours
	MaxTitleLength     = 200
	MaxNotesLength     = 500
	MaxAddressLength   = 500
	MaxReasonLength    = 500
	MaxCommentLength   = 2000
	MaxExperienceYears = 80
	MaxTags            = 20
	MaxTagLength       = 50

	UnratedRating = 0
	MinRating     = 1
	MaxRating     = 5
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses bookings in these statuses do not occupy a slot
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// OpenStatuses bookings that still require provider attention and block service deletion
var OpenStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
