package serve_test

import (
	"testing"

	"github.com/krystal-group/stripe-statements/cmd/serve"

	"github.com/stretchr/testify/assert"
)

func TestServeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "serve", serve.Cmd.Use)
	assert.Contains(t, serve.Cmd.Short, "HTTP")
	assert.Contains(t, serve.Cmd.Long, "health endpoint")
	assert.NotNil(t, serve.Cmd.Run)
}

func TestServeCommand_AddrFlag(t *testing.T) {
	flag := serve.Cmd.Flags().Lookup("addr")
	assert.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}
