package dto

// Reference-data CRUD payloads. Workers, motor models, processes and the
// two category levels share the same thin create/update/list shapes.

type WorkerDTO struct {
	WorkerCode string `json:"worker_code"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at"`
}

type CreateWorkerRequest struct {
	WorkerCode string `json:"worker_code" validate:"required,max=20"`
	Name       string `json:"name" validate:"required,max=50"`
}

type UpdateWorkerRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type ListWorkersResponse struct {
	Message string      `json:"message"`
	Items   []WorkerDTO `json:"items"`
}

type WorkerResponse struct {
	Message string     `json:"message"`
	Worker  *WorkerDTO `json:"worker"`
}

type MotorModelDTO struct {
	ModelCode string  `json:"model_code"`
	Name      string  `json:"name"`
	Aliases   *string `json:"aliases,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type CreateMotorModelRequest struct {
	ModelCode string  `json:"model_code" validate:"required,max=50"`
	Name      string  `json:"name" validate:"required,max=100"`
	Aliases   *string `json:"aliases,omitempty" validate:"omitempty,max=255"`
}

type UpdateMotorModelRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Aliases *string `json:"aliases,omitempty" validate:"omitempty,max=255"`
}

type ListMotorModelsResponse struct {
	Message string          `json:"message"`
	Items   []MotorModelDTO `json:"items"`
}

type MotorModelResponse struct {
	Message string         `json:"message"`
	Model   *MotorModelDTO `json:"model"`
}

type ProcessDTO struct {
	ProcessCode string  `json:"process_code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type CreateProcessRequest struct {
	ProcessCode string  `json:"process_code" validate:"required,max=20"`
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type UpdateProcessRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type ListProcessesResponse struct {
	Message string       `json:"message"`
	Items   []ProcessDTO `json:"items"`
}

type ProcessResponse struct {
	Message string      `json:"message"`
	Process *ProcessDTO `json:"process"`
}

type CategoryDTO struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type CreateCategoryRequest struct {
	Code string `json:"code" validate:"required,max=20"`
	Name string `json:"name" validate:"required,max=100"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type ListCategoriesResponse struct {
	Message string        `json:"message"`
	Items   []CategoryDTO `json:"items"`
}

type CategoryResponse struct {
	Message  string       `json:"message"`
	Category *CategoryDTO `json:"category"`
}

type DeleteByCodeResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}
