package vos

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleNewMapEnvFromEnvList() {
	env := NewMapEnvFromEnvList([]string{"A=B", "C=D", "E", "F=G=H"})

	fmt.Printf("Environ(): %q\n", env.Environ())
	fmt.Printf("Getenv(\"F\"): %q\n", env.Getenv("F"))

	// Output: Environ(): ["A=B" "C=D" "E=" "F=G=H"]
	// Getenv("F"): "G=H"
}

func ExampleMapEnv_LookupEnv() {
	env := NewMapEnv()
	env.Setenv("A", "B")

	val, ok := env.LookupEnv("A")
	fmt.Println("Existing", "val:", val, "ok:", ok)
	val, ok = env.LookupEnv("B")
	fmt.Println("Missing", "val:", val, "ok:", ok)

	// Output: Existing val: B ok: true
	// Missing val:  ok: false
}

func TestOSEnv(t *testing.T) {
	t.Setenv("SMALLSH_VOS_TEST", "value")

	env := OSEnv{}
	assert.Equal(t, "value", env.Getenv("SMALLSH_VOS_TEST"))
	assert.Contains(t, env.Environ(), "SMALLSH_VOS_TEST=value")

	_, ok := env.LookupEnv("SMALLSH_VOS_TEST_MISSING")
	assert.False(t, ok)
}
