package store

import "errors"

var (
	ErrLoadFailed    = errors.New("graph load failed")
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrDanglingEdge  = errors.New("edge references missing node")
	ErrNodeNotFound  = errors.New("node not found")
)
