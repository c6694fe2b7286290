// Package usecase validates tool inputs before delegating to the LinkedIn
// client.
//
// Every precondition is checked synchronously and fails with an
// apperrors.KindValidation error before any remote call is attempted, so a
// rejected input never has partial side effects.
package usecase
