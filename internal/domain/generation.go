package domain

import (
	"context"
)

// Generator is the text/image generation capability consumed by the relay.
// Failures are reported through the result status, never as a Go error:
// callers must check Status before using the payload.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) TextResult
	GenerateImage(ctx context.Context, prompt string) ImageResult
}

type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusError   ResultStatus = "error"
)

type TextResult struct {
	Text   string       `json:"text"`
	HTML   string       `json:"html,omitempty"`
	Status ResultStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
}

type ImageResult struct {
	URL    string       `json:"url"`
	Status ResultStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
}

func TextFailure(msg string) TextResult {
	return TextResult{Status: StatusError, Error: msg}
}

func ImageFailure(msg string) ImageResult {
	return ImageResult{Status: StatusError, Error: msg}
}
