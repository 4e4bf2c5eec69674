package entity

import "errors"

var (
	ErrProfileNameRequired       = errors.New("auth: profile first and last name are required")
	ErrProfileDepartmentRequired = errors.New("auth: profile department is required")
	ErrProfileRoleUnsupported    = errors.New("auth: profile role is not supported")
	ErrProfileVariantMismatch    = errors.New("auth: profile fields do not match the role")
	ErrStudentIDRequired         = errors.New("auth: student id is required")
	ErrStudentSemesterInvalid    = errors.New("auth: semester must be between 1 and 8")
	ErrEmployeeIDRequired        = errors.New("auth: employee id is required")
	ErrDesignationRequired       = errors.New("auth: designation is required")
)

// DefaultCampus is assumed when signup omits the campus.
const DefaultCampus = "Islamabad"

// StudentProfile holds the fields only students carry.
type StudentProfile struct {
	StudentID string `json:"student_id"`
	Semester  int    `json:"semester"`
}

// FacultyProfile holds the fields only faculty carry.
type FacultyProfile struct {
	EmployeeID  string `json:"employee_id"`
	Designation string `json:"designation"`
}

// Profile is the role-conditional part of an identity. Exactly one of
// Student or Faculty is set, and it must match the identity's role; admin
// identities carry neither. Construct through NewProfile so the variant
// invariant holds everywhere a Profile travels.
type Profile struct {
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Department string          `json:"department"`
	Phone      string          `json:"phone,omitempty"`
	Campus     string          `json:"campus"`
	Student    *StudentProfile `json:"student,omitempty"`
	Faculty    *FacultyProfile `json:"faculty,omitempty"`
}

// NewProfile validates p against the role and returns a normalized copy.
func NewProfile(role Role, p Profile) (Profile, error) {
	if p.FirstName == "" || p.LastName == "" {
		return Profile{}, ErrProfileNameRequired
	}

	if p.Department == "" {
		return Profile{}, ErrProfileDepartmentRequired
	}

	if p.Campus == "" {
		p.Campus = DefaultCampus
	}

	switch role {
	case RoleStudent:
		if p.Faculty != nil || p.Student == nil {
			return Profile{}, ErrProfileVariantMismatch
		}
		if p.Student.StudentID == "" {
			return Profile{}, ErrStudentIDRequired
		}
		if p.Student.Semester < 1 || p.Student.Semester > 8 {
			return Profile{}, ErrStudentSemesterInvalid
		}

	case RoleFaculty:
		if p.Student != nil || p.Faculty == nil {
			return Profile{}, ErrProfileVariantMismatch
		}
		if p.Faculty.EmployeeID == "" {
			return Profile{}, ErrEmployeeIDRequired
		}
		if p.Faculty.Designation == "" {
			return Profile{}, ErrDesignationRequired
		}

	case RoleAdmin:
		if p.Student != nil || p.Faculty != nil {
			return Profile{}, ErrProfileVariantMismatch
		}

	default:
		return Profile{}, ErrProfileRoleUnsupported
	}

	return p, nil
}

// FullName joins the first and last name for display and email greetings.
func (p Profile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
