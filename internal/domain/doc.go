// Package domain defines core data models, contracts and the error taxonomy
// shared across the app. It contains plain types, interfaces and sentinel
// errors only.
package domain
