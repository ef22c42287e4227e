package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PagedEnvelope wraps list responses that carry paging metadata.
type PagedEnvelope struct {
	Data any      `json:"data"`
	Page PageMeta `json:"page"`
}

// PageMeta mirrors the page block returned by the upstream catalog API.
type PageMeta struct {
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
