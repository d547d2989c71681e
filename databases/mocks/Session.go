package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	mongo "go.mongodb.org/mongo-driver/mongo"
	options "go.mongodb.org/mongo-driver/mongo/options"
)

// Session mocks the two session methods the stores call. The embedded
// mongo.Session is nil; any other method panics.
type Session struct {
	mongo.Session
	mock.Mock
}

// WithTransaction runs fn directly unless the mock returns an error
func (_m *Session) WithTransaction(ctx context.Context, fn func(mongo.SessionContext) (interface{}, error), _ ...*options.TransactionOptions) (interface{}, error) {
	ret := _m.Called(ctx)
	if err := ret.Error(1); err != nil {
		return nil, err
	}
	return fn(mongo.NewSessionContext(ctx, _m))
}

// EndSession provides a mock function with given fields: ctx
func (_m *Session) EndSession(ctx context.Context) {
	_m.Called(ctx)
}
