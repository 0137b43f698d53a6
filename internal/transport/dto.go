package transport

type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Pointer fields tell a missing key apart from a zero value. Non-integer
// prices and non-boolean availability fail JSON decoding.
type CreateProductRequest struct {
	SKU         *string `json:"sku" validate:"required"`
	ProductName *string `json:"productName" validate:"required"`
	Price       *int64  `json:"price" validate:"required"`
	IsAvailable *bool   `json:"isAvailable" validate:"required"`
}

type UpdateProductRequest struct {
	ProductName *string `json:"productName"`
	Price       *int64  `json:"price"`
	IsAvailable *bool   `json:"isAvailable"`
}

type StatusResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
