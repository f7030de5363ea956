package domain

import "errors"

// Sentinel errors used across layers. The engine maps these to fixed
// user-facing messages at its boundary; nothing below it localizes.
var (
	// ErrGeneration — the backend errored or returned a malformed structure.
	ErrGeneration = errors.New("generation failed")
	// ErrNoIngredients — an ingredient photo yielded nothing usable.
	ErrNoIngredients = errors.New("no ingredients recognized")
	// ErrEmptyPantry — a pantry-based operation was invoked with no items.
	ErrEmptyPantry = errors.New("pantry is empty")
	// ErrRecognition — photo item identification failed (transport or parse).
	ErrRecognition = errors.New("item recognition failed")
	// ErrAdjustment — serving rescale failed (transport or parse).
	ErrAdjustment = errors.New("ingredient adjustment failed")
	// ErrDeduction — post-cooking pantry deduction failed.
	ErrDeduction = errors.New("pantry deduction failed")
)
