package plycolumn

import "errors"

// Sentinel errors for the failure classes callers are expected to
// branch on with errors.Is. Open failures are fatal to the session;
// everything else leaves it usable.
var (
	// ErrClosedSession is returned by every operation after Close.
	ErrClosedSession = errors.New("plycolumn: session is closed")

	// ErrNoElement is returned when an operation needs a current
	// element but the session is before the first or past the last.
	ErrNoElement = errors.New("plycolumn: no current element")

	// ErrNotLoaded is returned by extraction before LoadElement
	// succeeded for the current element.
	ErrNotLoaded = errors.New("plycolumn: current element not loaded")

	// ErrPropertyNotFound is returned when a requested property name
	// does not exist in the current element.
	ErrPropertyNotFound = errors.New("plycolumn: property not found")

	// ErrListProperty is returned when a resolved or extracted
	// property is list-valued. List extraction is not supported.
	ErrListProperty = errors.New("plycolumn: list property not supported")

	// ErrStaleIndex is returned when a PropertyIndex resolved against
	// one element is used after the session advanced to another.
	ErrStaleIndex = errors.New("plycolumn: property index is stale")

	// ErrBufferTooSmall is returned when the destination cannot hold
	// NumRows rows of the requested layout.
	ErrBufferTooSmall = errors.New("plycolumn: destination buffer too small")

	// ErrBadLayout is returned for offset/stride combinations that
	// would make rows overlap or run backwards.
	ErrBadLayout = errors.New("plycolumn: invalid extraction offset or stride")
)
