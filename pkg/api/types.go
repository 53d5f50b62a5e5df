// Package api defines the wire-level request and response types of the
// taskdeck HTTP boundary. Handlers and integration tests share these so
// the JSON surface stays consistent.
package api

import "time"

// User is the public projection of a user record. The credential hash
// is never serialized.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role,omitempty"`
	Organization string     `json:"organization,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// Organization is the public projection of an organization record.
type Organization struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Members []User `json:"members"`
}

// Task is the public projection of a task, with assignees expanded to
// user summaries.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	Category     string     `json:"category"`
	AssignedTo   []User     `json:"assignedTo"`
	Organization string     `json:"organization"`
	CreatedBy    string     `json:"createdBy"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type RegisterRequest struct {
	Name       string `json:"name"       validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required,min=6"`
	InviteCode string `json:"inviteCode" validate:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type OrganizationRegisterRequest struct {
	OrgName string `json:"orgName" validate:"required"`
}

type InviteRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role"  validate:"required,oneof=manager member"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description" validate:"omitempty"`
	AssignedTo  []string   `json:"assignedTo"  validate:"required,min=1,dive,required"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Category    string     `json:"category"    validate:"omitempty,oneof=bug feature improvement"`
	DueDate     *time.Time `json:"dueDate"     validate:"omitempty"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=todo in-progress completed"`
}

type ChangeRoleRequest struct {
	NewRole string `json:"newRole" validate:"required"`
}

// MessageResponse is the canonical confirmation / error body.
type MessageResponse struct {
	Message string `json:"message"`
}

type AuthResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type OrganizationAuthResponse struct {
	Message      string       `json:"message"`
	Organization Organization `json:"organization"`
	User         User         `json:"user"`
	InviteCode   string       `json:"inviteCode,omitempty"`
}

type OrganizationDetailsResponse struct {
	Name string `json:"name"`
}

type InviteResponse struct {
	Message    string `json:"message"`
	InviteLink string `json:"inviteLink"`
	Code       string `json:"code"`
	Role       string `json:"role"`
}

type TaskResponse struct {
	Message string `json:"message"`
	Task    Task   `json:"task"`
}

type UserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
