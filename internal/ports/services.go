package ports

// Request types. JSON tags follow the wire contract of the existing
// clients; validator tags cover required-field checks, format rules live
// in the entities package.

type LoginRequest struct {
	Username string `json:"usuario" validate:"required"`
	Password string `json:"contraseña" validate:"required"`
}

type CreateTaskRequest struct {
	Title      string `json:"titulo" validate:"required"`
	Date       string `json:"fecha" validate:"required"`
	Time       string `json:"hora" validate:"required"`
	CategoryID *int64 `json:"categoriaId"`
}

// UpdateTaskRequest carries a partial task: nil fields are left untouched.
type UpdateTaskRequest struct {
	Title      *string `json:"titulo"`
	Date       *string `json:"fecha"`
	Time       *string `json:"hora"`
	Completed  *bool   `json:"completada"`
	CategoryID *int64  `json:"categoriaId"`
}

type DeleteTasksRequest struct {
	IDs []int64 `json:"ids" validate:"required"`
}

type CreateCategoryRequest struct {
	Name  string `json:"nombre" validate:"required"`
	Color string `json:"color"`
}

type UpdateCategoryRequest struct {
	Name  *string `json:"nombre"`
	Color *string `json:"color"`
}

// Response envelopes.

type DataResponse struct {
	Data interface{} `json:"data"`
}

type MessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type DeleteResponse struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deletedCount"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"usuario"`
	Message  string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// DiagnosticResult is one check from the self-test endpoints.
type DiagnosticResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// DiagnosticReport is the body returned by /api/test/unitarias and
// /api/test/integracion.
type DiagnosticReport struct {
	Suite   string             `json:"suite"`
	Total   int                `json:"total"`
	Passed  int                `json:"passed"`
	Failed  int                `json:"failed"`
	Results []DiagnosticResult `json:"results"`
}
