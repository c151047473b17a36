package airplay

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolePasswordProvider(t *testing.T) {
	var out bytes.Buffer
	p := &ConsolePasswordProvider{In: strings.NewReader("hunter2\r\n"), Out: &out}

	pw, ok, err := p.Password("10.0.0.2", "Salon")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hunter2", pw)
	assert.Equal(t, "Please input password for Salon (10.0.0.2): ", out.String())
}

func TestConsolePasswordProviderHostOnly(t *testing.T) {
	var out bytes.Buffer
	p := &ConsolePasswordProvider{In: strings.NewReader("x\n"), Out: &out}

	_, _, err := p.Password("10.0.0.2", "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, "Please input password for 10.0.0.2: ", out.String())
}

func TestConsolePasswordProviderEmpty(t *testing.T) {
	for _, input := range []string{"\n", ""} {
		p := &ConsolePasswordProvider{In: strings.NewReader(input), Out: &bytes.Buffer{}}

		pw, ok, err := p.Password("10.0.0.2", "")
		require.NoError(t, err)
		assert.False(t, ok, "input %q", input)
		assert.Empty(t, pw)
	}
}

func TestStaticPassword(t *testing.T) {
	pw, ok, err := StaticPassword("1234").Password("host", "name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1234", pw)
}

func TestPasswordFunc(t *testing.T) {
	var gotHost, gotName string
	p := PasswordFunc(func(host, name string) (string, bool, error) {
		gotHost, gotName = host, name
		return "", false, nil
	})

	_, ok, err := p.Password("10.0.0.3", "Yatak Odası")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "10.0.0.3", gotHost)
	assert.Equal(t, "Yatak Odası", gotName)
}

func TestConsolePasswordProviderLeavesRestOfInput(t *testing.T) {
	in := strings.NewReader("secret\n\n")
	p := &ConsolePasswordProvider{In: in, Out: &bytes.Buffer{}}

	pw, ok, err := p.Password("10.0.0.2", "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret", pw)
	assert.Equal(t, 1, in.Len(), "the following Enter is still unread")
}
