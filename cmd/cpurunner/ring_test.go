package main

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRing_KeepsNewest(t *testing.T) {
	r := newRing[int](3)
	assert.Empty(t, r.Items())
	for i := 1; i <= 5; i++ {
		r.Push(i)
	}
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []int{3, 4, 5}, r.Items())
}

func TestRing_PartialFill(t *testing.T) {
	r := newRing[string](4)
	r.Push("a")
	r.Push("b")
	assert.Equal(t, []string{"a", "b"}, r.Items())
}

func TestRing_ByteWriter(t *testing.T) {
	r := newRing[byte](5)
	_, err := fmt.Fprint(io.Writer(tail{r}), "Passed all tests")
	assert.NoError(t, err)
	assert.Equal(t, "tests", string(r.Items()))
}

func TestFailurePattern(t *testing.T) {
	m := failRe.FindStringSubmatch("cpu_instrs\n\n01:ok 02:01\n\nFailed 1 tests")
	if assert.NotNil(t, m) {
		assert.Equal(t, "1", m[1])
	}
	assert.Nil(t, failRe.FindStringSubmatch("Passed"))
	assert.Equal(t, []string{"01:05", "02:01"}, stageRe.FindAllString("01:05 ok\n02:01", -1))
}
