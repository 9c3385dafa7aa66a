package tui

import "errors"

// ErrMissingIdeaService is returned when the idea service is not provided.
var ErrMissingIdeaService = errors.New("tui: idea service is required")

// ErrMissingPageService is returned when the page service is not provided.
var ErrMissingPageService = errors.New("tui: page service is required")

// ErrMissingTagService is returned when the tag service is not provided.
var ErrMissingTagService = errors.New("tui: tag service is required")

// ErrMissingDocumentSession is returned when the document session is not provided.
var ErrMissingDocumentSession = errors.New("tui: document session is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
