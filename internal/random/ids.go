package random

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// UUID returns a new version 4 (random) or version 7 (time-ordered) UUID.
func UUID(version int) (string, error) {
	const op = "random.uuid"
	var (
		id  uuid.UUID
		err error
	)
	switch version {
	case 0, 4:
		id, err = uuid.NewRandom()
	case 7:
		id, err = uuid.NewV7()
	default:
		return "", toolerr.Newf(toolerr.KindInvalidArgument, op, "unsupported UUID version %d", version)
	}
	if err != nil {
		return "", toolerr.Wrap(toolerr.KindIO, op, "read random source", err)
	}
	return id.String(), nil
}

// ULID returns a new lexicographically sortable identifier.
func ULID() string {
	return ulid.Make().String()
}
