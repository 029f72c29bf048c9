package user

type ProfileData struct {
	FullName     string         `json:"full_name" binding:"required"`
	Role         string         `json:"role" binding:"required,oneof=employee admin super_admin"`
	Department   string         `json:"department"`
	EmployeeCode string         `json:"employee_code"`
	Designation  string         `json:"designation"`
	PhoneNumber  string         `json:"phone_number"`
	Extra        map[string]any `json:"extra"`
}

type ProvisionRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	UserData ProfileData `json:"user_data" binding:"required"`
}

type ProvisionResponse struct {
	UID string `json:"uid"`
}

type UpdateRoleRequest struct {
	UserID           string   `json:"-"`
	Role             string   `json:"role" binding:"required,oneof=employee admin super_admin"`
	Permissions      []string `json:"permissions"`
	AdminDepartments []string `json:"admin_departments"`
}

type UpdateRoleResponse struct {
	Success bool `json:"success"`
}

type UserResponse struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	FullName         string         `json:"full_name"`
	Role             string         `json:"role"`
	Department       string         `json:"department"`
	EmployeeCode     string         `json:"employee_code,omitempty"`
	Designation      string         `json:"designation,omitempty"`
	PhoneNumber      string         `json:"phone_number,omitempty"`
	Permissions      []string       `json:"permissions"`
	AdminDepartments []string       `json:"admin_departments"`
	Extra            map[string]any `json:"extra,omitempty"`
	IsActive         bool           `json:"is_active"`
	CreatedAt        string         `json:"created_at"`
	UpdatedAt        string         `json:"updated_at"`
}
