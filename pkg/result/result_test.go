package result_test

import (
	"errors"
	"testing"

	"github.com/mvvmkit/blueprint/pkg/result"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"
)

func TestResult(t *testing.T) {
	s := testcase.NewSpec(t)

	subject := testcase.Let[result.Result[int]](s, nil)

	s.When("it is a zero value", func(s *testcase.Spec) {
		subject.Let(s, func(t *testcase.T) result.Result[int] {
			return result.Result[int]{}
		})

		s.Then("it is unset", func(t *testcase.T) {
			r := subject.Get(t)
			assert.False(t, r.IsSet())
			assert.False(t, r.IsOK())
			assert.False(t, r.IsErr())
			assert.Nil(t, r.Err())
			assert.Equal(t, "Unset", r.String())
		})

		s.Then("get yields ErrUnset", func(t *testcase.T) {
			v, err := subject.Get(t).Get()
			assert.ErrorIs(t, result.ErrUnset, err)
			assert.Equal(t, 0, v)
		})
	})

	s.When("it holds a success", func(s *testcase.Spec) {
		value := let.Int(s)

		subject.Let(s, func(t *testcase.T) result.Result[int] {
			return result.Ok(value.Get(t))
		})

		s.Then("value is accessible", func(t *testcase.T) {
			r := subject.Get(t)
			assert.True(t, r.IsSet())
			assert.True(t, r.IsOK())
			assert.False(t, r.IsErr())

			v, ok := r.Value()
			assert.True(t, ok)
			assert.Equal(t, value.Get(t), v)

			got, err := r.Get()
			assert.NoError(t, err)
			assert.Equal(t, value.Get(t), got)
			assert.Nil(t, r.Err())
		})
	})

	s.When("it holds a failure", func(s *testcase.Spec) {
		expErr := let.Error(s)

		subject.Let(s, func(t *testcase.T) result.Result[int] {
			return result.Err[int](expErr.Get(t))
		})

		s.Then("error is accessible", func(t *testcase.T) {
			r := subject.Get(t)
			assert.True(t, r.IsSet())
			assert.True(t, r.IsErr())
			assert.False(t, r.IsOK())
			assert.ErrorIs(t, expErr.Get(t), r.Err())

			_, ok := r.Value()
			assert.False(t, ok)

			_, err := r.Get()
			assert.ErrorIs(t, expErr.Get(t), err)
			assert.Contains(t, r.String(), expErr.Get(t).Error())
		})
	})
}

func TestErr_nilError(t *testing.T) {
	r := result.Err[string](nil)
	assert.True(t, r.IsErr())
	assert.ErrorIs(t, result.ErrNilError, r.Err())
}

func TestOf(t *testing.T) {
	t.Run("value without error", func(t *testing.T) {
		r := result.Of("foo", nil)
		v, ok := r.Value()
		assert.True(t, ok)
		assert.Equal(t, "foo", v)
	})
	t.Run("error wins over value", func(t *testing.T) {
		expErr := errors.New("boom")
		r := result.Of("foo", expErr)
		assert.True(t, r.IsErr())
		assert.ErrorIs(t, expErr, r.Err())
	})
}
