package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationRequired = ErrorResponse{
		Status:  "error",
		Error:   "authentication_required",
		Details: "A valid session is required",
	}

	ErrAccessDenied = ErrorResponse{
		Status:  "error",
		Error:   "access_denied",
		Details: "Only administrators can manage this content",
	}

	ErrBackendNotReady = ErrorResponse{
		Status:  "error",
		Error:   "backend_not_ready",
		Details: "The studio backend is still starting up",
	}

	ErrBackendFailure = ErrorResponse{
		Status:  "error",
		Error:   "backend_failure",
		Details: "The studio backend rejected the request",
	}
)
