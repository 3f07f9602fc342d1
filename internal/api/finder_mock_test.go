package api_test

import (
	"context"
	"testing"

	"github.com/UnknownOlympus/servo/internal/geo"
	"github.com/UnknownOlympus/servo/internal/service"
	"github.com/stretchr/testify/mock"
)

// mockFinder is a testify mock of api.Finder.
type mockFinder struct {
	mock.Mock
}

// Cheapest provides a mock function with given fields: ctx, user, radiusKm
func (_m *mockFinder) Cheapest(ctx context.Context, user geo.GeoPoint, radiusKm float64) (*service.CheapestResult, error) {
	ret := _m.Called(ctx, user, radiusKm)

	if len(ret) == 0 {
		panic("no return value specified for Cheapest")
	}

	var r0 *service.CheapestResult
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, geo.GeoPoint, float64) (*service.CheapestResult, error)); ok {
		return rf(ctx, user, radiusKm)
	}
	if rf, ok := ret.Get(0).(func(context.Context, geo.GeoPoint, float64) *service.CheapestResult); ok {
		r0 = rf(ctx, user, radiusKm)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*service.CheapestResult)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, geo.GeoPoint, float64) error); ok {
		r1 = rf(ctx, user, radiusKm)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Nearest provides a mock function with given fields: ctx, user
func (_m *mockFinder) Nearest(ctx context.Context, user geo.GeoPoint) (*service.NearestResult, error) {
	ret := _m.Called(ctx, user)

	if len(ret) == 0 {
		panic("no return value specified for Nearest")
	}

	var r0 *service.NearestResult
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, geo.GeoPoint) (*service.NearestResult, error)); ok {
		return rf(ctx, user)
	}
	if rf, ok := ret.Get(0).(func(context.Context, geo.GeoPoint) *service.NearestResult); ok {
		r0 = rf(ctx, user)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*service.NearestResult)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, geo.GeoPoint) error); ok {
		r1 = rf(ctx, user)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func newMockFinder(t *testing.T) *mockFinder {
	m := &mockFinder{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
