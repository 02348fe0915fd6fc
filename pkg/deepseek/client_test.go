package deepseek_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"littlex/pkg/deepseek"
)

func TestChatWithoutKeyFailsFast(t *testing.T) {
	t.Parallel()

	client := deepseek.NewClient(nil)
	defer client.Close()

	require.False(t, client.Configured())

	_, err := client.Chat(t.Context(), "system", "prompt")
	require.ErrorIs(t, err, deepseek.ErrNoAPIKey)
}

func TestConfigured(t *testing.T) {
	t.Parallel()

	client := deepseek.NewClient(&deepseek.ClientConfig{APIKey: "k"})
	defer client.Close()

	require.True(t, client.Configured())
}
