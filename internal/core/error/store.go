package errx

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// WrapRedis maps Redis errors to AppError. redis.Nil is not an error for callers
// of the session store and is expected to be handled before reaching here.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return NotFound("session not found", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return UpstreamTimeout(RedisErrorMessage, err)
	}
	return UpstreamUnavailable(RedisErrorMessage, err)
}

// WrapMongo maps driver errors to AppError.
func WrapMongo(err error) error {
	if err == nil {
		return nil
	}
	var app *AppError
	if errors.As(err, &app) {
		return err
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return NotFound("document not found", err)
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return UpstreamTimeout(MongoTimeoutMessage, err)
	default:
		return UpstreamUnavailable(MongoErrorMessage, err)
	}
}
