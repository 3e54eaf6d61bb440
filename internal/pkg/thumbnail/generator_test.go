package thumbnail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	assert.Equal(t, "42.jpeg", ObjectName(42))
	assert.Equal(t, "1.jpeg", ObjectName(1))
}

func TestTitleScale(t *testing.T) {
	assert.Equal(t, 7, titleScale("短标题"))
	assert.Equal(t, 7, titleScale("1234567890"))
	assert.Equal(t, 5, titleScale("12345678901"))
	assert.Equal(t, 5, titleScale("123456789012345"))
	assert.Equal(t, 4, titleScale("1234567890123456"))
	// 按字符数而不是字节数分级
	assert.Equal(t, 7, titleScale("十个汉字的标题呀呀呀"))
}
