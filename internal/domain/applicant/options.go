package applicant

// ListOptions filters the applicant list. The zero value returns every applicant.
type ListOptions struct {
	ExcludeBulk bool
	Status      Status
	Search      string
}

// Options configures the applicant service.
type Options struct {
	// ReplaceByEmail makes bulk upload update an existing applicant whose
	// email matches the one derived from the file name.
	ReplaceByEmail bool
	// PhoneRegion is the default region used to normalize phone numbers.
	PhoneRegion string
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{ReplaceByEmail: true, PhoneRegion: "US"}
}
