package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSignature(t *testing.T) {
	sig := ComputeSignature("secret", "order_abc", "pay_xyz")

	// hex-encoded sha256 digest
	assert.Len(t, sig, 64)
	assert.Regexp(t, "^[0-9a-f]+$", sig)

	// deterministic for the same inputs
	assert.Equal(t, sig, ComputeSignature("secret", "order_abc", "pay_xyz"))

	// any change to key or payload changes the digest
	assert.NotEqual(t, sig, ComputeSignature("other", "order_abc", "pay_xyz"))
	assert.NotEqual(t, sig, ComputeSignature("secret", "order_abd", "pay_xyz"))
	assert.NotEqual(t, sig, ComputeSignature("secret", "order_abc", "pay_xyw"))
}

func TestFakeGatewayVerifyRoundTrip(t *testing.T) {
	g := newFakeGateway()
	sig := g.sign("order_1", "pay_1")
	assert.True(t, g.VerifySignature("order_1", "pay_1", sig))
	assert.False(t, g.VerifySignature("order_1", "pay_2", sig))
	assert.False(t, g.VerifySignature("order_1", "pay_1", "deadbeef"))
}
