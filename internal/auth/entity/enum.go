package entity

// Role classifies an identity within the campus.
type Role string

const (
	RoleUnknown Role = ""
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// RoleFromString parses a role, returning RoleUnknown for anything
// unrecognized.
func RoleFromString(str string) Role {
	switch str {
	case "student":
		return RoleStudent
	case "faculty":
		return RoleFaculty
	case "admin":
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	return string(r)
}

// IsRegisterable reports whether the role can be chosen at signup. Admin
// accounts are provisioned out of band.
func (r Role) IsRegisterable() bool {
	return r == RoleStudent || r == RoleFaculty
}

func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleFaculty || r == RoleAdmin
}

// ChallengePurpose scopes a verification code to a single flow. A code
// issued for one purpose can never confirm another.
type ChallengePurpose string

const (
	ChallengePurposeUnknown ChallengePurpose = ""
	ChallengePurposeSignup  ChallengePurpose = "signup"
	ChallengePurposeLogin   ChallengePurpose = "login"

	// ChallengePurposePasswordReset is reserved; no flow issues it yet.
	ChallengePurposePasswordReset ChallengePurpose = "reset_password"
)

func ChallengePurposeFromString(str string) ChallengePurpose {
	switch str {
	case "signup":
		return ChallengePurposeSignup
	case "login":
		return ChallengePurposeLogin
	case "reset_password":
		return ChallengePurposePasswordReset
	default:
		return ChallengePurposeUnknown
	}
}

func (p ChallengePurpose) String() string {
	return string(p)
}

func (p ChallengePurpose) IsValid() bool {
	switch p {
	case ChallengePurposeSignup, ChallengePurposeLogin, ChallengePurposePasswordReset:
		return true
	default:
		return false
	}
}

// DeviceType is the coarse category of a client device.
type DeviceType string

const (
	DeviceTypeUnknown DeviceType = ""
	DeviceTypeMobile  DeviceType = "mobile"
	DeviceTypeWeb     DeviceType = "web"
	DeviceTypeDesktop DeviceType = "desktop"
)

func DeviceTypeFromString(str string) DeviceType {
	switch str {
	case "mobile":
		return DeviceTypeMobile
	case "web":
		return DeviceTypeWeb
	case "desktop":
		return DeviceTypeDesktop
	default:
		return DeviceTypeUnknown
	}
}

func (d DeviceType) String() string {
	return string(d)
}

func (d DeviceType) IsValid() bool {
	switch d {
	case DeviceTypeMobile, DeviceTypeWeb, DeviceTypeDesktop:
		return true
	default:
		return false
	}
}
