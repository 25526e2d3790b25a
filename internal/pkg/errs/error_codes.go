/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body exceeded the server limit.
	ErrRequestEntityTooLarge = 1005

	// ErrRateLimitExceeded indicates that the request rate exceeded the configured limit.
	ErrRateLimitExceeded = 1006
)

// 2xxx: Messaging Business Logic Errors
const (
	// ErrEmptyMessage indicates a send with no text and no image payloads.
	ErrEmptyMessage = 2101

	// ErrMessageTooLong indicates that the message text exceeded the length limit.
	ErrMessageTooLong = 2102

	// ErrTooManyImages indicates that a send carried more images than allowed.
	ErrTooManyImages = 2103

	// ErrImagePayloadInvalid indicates an image payload that is neither a valid
	// data URI of an allowed image type nor an already-stored URL.
	ErrImagePayloadInvalid = 2104

	// ErrImageTooLarge indicates a decoded image payload over the size limit.
	ErrImageTooLarge = 2105

	// ErrRecipientNotFound indicates that the addressed user does not exist.
	ErrRecipientNotFound = 2106
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthorized indicates a missing or invalid identity token.
	ErrUnauthorized = 3001

	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = 3002

	// ErrEmailTaken indicates that the signup email is already registered.
	ErrEmailTaken = 3003

	// ErrInvalidEmail indicates a malformed signup email address.
	ErrInvalidEmail = 3004

	// ErrInvalidPassword indicates a password outside the allowed length range.
	ErrInvalidPassword = 3005

	// ErrInvalidFullName indicates a missing or oversized display name.
	ErrInvalidFullName = 3006

	// ErrAlreadyLoggedIn indicates an auth request from an authenticated session.
	ErrAlreadyLoggedIn = 3007

	// ErrUserNotFound indicates that the referenced account does not exist.
	ErrUserNotFound = 3008

	// ErrPowChallengeRequired indicates the client must complete a Proof-of-Work challenge first.
	ErrPowChallengeRequired = 3101

	// ErrPowChallengeInvalid indicates that the submitted PoW proof is invalid.
	ErrPowChallengeInvalid = 3102

	// ErrSessionReplaced indicates that the connection was closed in favor of a newer one.
	ErrSessionReplaced = 3103
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server internal error.
	ErrUnknown = 5000

	// ErrUploadFailed indicates that storing an image payload failed; when any
	// payload of a batch fails the whole batch is rejected.
	ErrUploadFailed = 5001

	// ErrMessageSaveFailed indicates that persisting a message failed; the
	// message must not be considered sent.
	ErrMessageSaveFailed = 5002
)
