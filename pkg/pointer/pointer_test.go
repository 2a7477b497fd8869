// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/quartoselo/pkg/pointer"
)

func TestTo_Copies(t *testing.T) {
	title := "A Loira do Banheiro"
	p := pointer.To(title)
	title = "changed"
	assert.Equal(t, "A Loira do Banheiro", *p)
}

func TestVal(t *testing.T) {
	assert.Equal(t, "", pointer.Val[string](nil))
	assert.Equal(t, 0, pointer.Val[int](nil))
	assert.Equal(t, "x", pointer.Val(pointer.To("x")))
}
