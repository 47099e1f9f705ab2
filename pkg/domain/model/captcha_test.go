package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

func TestCaptchaGateDisabled(t *testing.T) {
	gate := model.NewCaptchaGate(false)
	gt.Bool(t, gate.Enabled()).False()

	// A disabled gate passes every attempt with an empty token
	token, err := gate.Consume()
	gt.NoError(t, err)
	gt.Value(t, token).Equal("")
	token, err = gate.Consume()
	gt.NoError(t, err)
	gt.Value(t, token).Equal("")
}

func TestCaptchaGateBlocksWithoutToken(t *testing.T) {
	gate := model.NewCaptchaGate(true)

	_, err := gate.Consume()
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, model.ErrCaptchaRequired)).True()
}

func TestCaptchaGateSingleUse(t *testing.T) {
	gate := model.NewCaptchaGate(true)
	gate.OnVerify("tok-1")

	token, err := gate.Consume()
	gt.NoError(t, err)
	gt.Value(t, token).Equal("tok-1")

	// The token was consumed; the next attempt blocks again
	_, err = gate.Consume()
	gt.Bool(t, errors.Is(err, model.ErrCaptchaRequired)).True()
}

func TestCaptchaGateReset(t *testing.T) {
	gate := model.NewCaptchaGate(true)
	gate.OnVerify("tok-1")
	gt.Value(t, gate.Generation()).Equal(0)

	gate.Reset()
	gt.Value(t, gate.Generation()).Equal(1)

	// Reset drops the pending token
	_, err := gate.Consume()
	gt.Bool(t, errors.Is(err, model.ErrCaptchaRequired)).True()

	gate.Reset()
	gt.Value(t, gate.Generation()).Equal(2)
}
