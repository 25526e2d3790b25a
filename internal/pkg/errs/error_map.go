/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// A zero Status falls back to HTTP 200 with a non-zero business code, matching
// the envelope convention used by the REST surface.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Messaging Business Logic Errors
	ErrEmptyMessage:        {Code: ErrEmptyMessage, Message: "Message has no content."},
	ErrMessageTooLong:      {Code: ErrMessageTooLong, Message: "Message is too long."},
	ErrTooManyImages:       {Code: ErrTooManyImages, Message: "A message can carry at most %d images."},
	ErrImagePayloadInvalid: {Code: ErrImagePayloadInvalid, Message: "Unsupported image payload."},
	ErrImageTooLarge:       {Code: ErrImageTooLarge, Message: "Image is too large."},
	ErrRecipientNotFound:   {Code: ErrRecipientNotFound, Message: "Recipient not found."},

	// 3xxx: User, Session, and Security Errors
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect email or password."},
	ErrEmailTaken:         {Code: ErrEmailTaken, Message: "Email is already registered."},
	ErrInvalidEmail:       {Code: ErrInvalidEmail, Message: "Invalid email address."},
	ErrInvalidPassword:    {Code: ErrInvalidPassword, Message: "Password must be between 6 and 50 characters."},
	ErrInvalidFullName:    {Code: ErrInvalidFullName, Message: "Invalid display name."},
	ErrAlreadyLoggedIn:    {Code: ErrAlreadyLoggedIn, Message: "You are already signed in."},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found."},

	ErrPowChallengeRequired: {Code: ErrPowChallengeRequired, Message: "Verification required. Please try again."},
	ErrPowChallengeInvalid:  {Code: ErrPowChallengeInvalid, Message: "Verification failed. Please try again."},
	ErrSessionReplaced:      {Code: ErrSessionReplaced, Message: "You connected from another device."},

	ErrUnauthorized: {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrUploadFailed:      {Code: ErrUploadFailed, Message: "Image upload failed. No message was sent."},
	ErrMessageSaveFailed: {Code: ErrMessageSaveFailed, Message: "Message could not be saved. Please try again.", Status: http.StatusInternalServerError},
}
