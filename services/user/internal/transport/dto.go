package transport

type CreateProfileRequest struct {
	AuthUserID  uint   `json:"authUserId"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        string `json:"role"`
}

type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
}

// Page is the offset-paginated list envelope shared by the admin and
// doctor listing endpoints.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

func NewPage[T any](items []T, page, size int, total int64) *Page[T] {
	pages := int((total + int64(size) - 1) / int64(size))
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Page: page, Size: size, TotalItems: total, TotalPages: pages}
}

type CreateDoctorProfileRequest struct {
	ProfileID          uint    `json:"profileId"`
	Specialization     string  `json:"specialization"`
	LicenseNumber      string  `json:"licenseNumber"`
	ExperienceYears    int     `json:"experienceYears"`
	Qualification      string  `json:"qualification"`
	Bio                string  `json:"bio"`
	ConsultationFee    float64 `json:"consultationFee"`
	AvailabilityStatus string  `json:"availabilityStatus"`
}
