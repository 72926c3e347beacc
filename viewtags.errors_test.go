package viewtags

import (
	"errors"
	"strconv"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsatony/go-viewtags/internal"
)

// metadata returns a metadata value of the outermost CustomError in err
func metadata(err error, key string) (string, bool) {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return "", false
	}
	return customErr.GetMetadata(key)
}

func TestNewParseError(t *testing.T) {
	t.Run("with cause error", func(t *testing.T) {
		pos := Position{Line: 5, Column: 10, Offset: 50}
		causeErr := errors.New("underlying parse issue")
		err := NewParseError(ErrMsgParseFailed, pos, causeErr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgParseFailed)
		assert.True(t, IsParseError(err))
		assert.True(t, errors.Is(err, causeErr))

		line, ok := metadata(err, MetaKeyLine)
		assert.True(t, ok)
		assert.Equal(t, strconv.Itoa(pos.Line), line)

		column, ok := metadata(err, MetaKeyColumn)
		assert.True(t, ok)
		assert.Equal(t, strconv.Itoa(pos.Column), column)

		offset, ok := metadata(err, MetaKeyOffset)
		assert.True(t, ok)
		assert.Equal(t, strconv.Itoa(pos.Offset), offset)
	})

	t.Run("lexer position wins", func(t *testing.T) {
		lexErr := &internal.LexerError{
			Message:  internal.ErrMsgUnterminatedStr,
			Position: Position{Line: 3, Column: 7, Offset: 30},
		}
		err := NewParseError(ErrMsgParseFailed, Position{Line: 1, Column: 1}, lexErr)

		line, _ := metadata(err, MetaKeyLine)
		column, _ := metadata(err, MetaKeyColumn)
		assert.Equal(t, "3", line)
		assert.Equal(t, "7", column)
	})

	t.Run("parser position wins", func(t *testing.T) {
		parseErr := &internal.ParserError{
			Message:  internal.ErrMsgExpectedPunct,
			Position: Position{Line: 2, Column: 4, Offset: 12},
		}
		err := NewParseError(ErrMsgParseFailed, Position{Line: 1, Column: 1}, parseErr)

		line, _ := metadata(err, MetaKeyLine)
		assert.Equal(t, "2", line)
	})

	t.Run("without cause error", func(t *testing.T) {
		err := NewParseError(ErrMsgMissingName, Position{Line: 1, Column: 1}, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgMissingName)
		assert.True(t, IsParseError(err))
	})
}

func TestNewInvalidInvocationDataError(t *testing.T) {
	err := NewInvalidInvocationDataError("Nav", Position{Line: 4, Column: 2}, "bad shape")

	require.Error(t, err)
	assert.True(t, IsInvalidInvocationData(err))
	assert.False(t, IsParseError(err))
	assert.Equal(t, `invalid component invocation data: component "Nav" at line 4: bad shape`, err.Error())

	component, ok := metadata(err, MetaKeyComponent)
	assert.True(t, ok)
	assert.Equal(t, "Nav", component)

	reason, ok := metadata(err, MetaKeyReason)
	assert.True(t, ok)
	assert.Equal(t, "bad shape", reason)

	code, ok := metadata(err, MetaKeyCode)
	assert.True(t, ok)
	assert.Equal(t, ErrCodeInvalidData, code)
}

func TestNewUnresolvableTemplateError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("no such file")
		err := NewUnresolvableTemplateError("Nav", "Nav/nav.twig", Position{Line: 2}, cause)

		assert.True(t, IsUnresolvableTemplate(err))
		assert.True(t, errors.Is(err, cause))
		assert.Contains(t, err.Error(), ErrMsgUnresolvableTemplate)

		path, ok := metadata(err, MetaKeyPath)
		assert.True(t, ok)
		assert.Equal(t, "Nav/nav.twig", path)
	})

	t.Run("without cause", func(t *testing.T) {
		err := NewUnresolvableTemplateError("Nav", "Nav/nav.twig", Position{Line: 2}, nil)
		assert.True(t, IsUnresolvableTemplate(err))
	})
}

func TestNewRenderError(t *testing.T) {
	cause := errors.New("boom")
	err := NewRenderError(ErrMsgRenderFailed, "Nav", Position{Line: 9}, cause)

	assert.True(t, errors.Is(err, cause))
	assert.False(t, IsUnresolvableTemplate(err))

	code, _ := metadata(err, MetaKeyCode)
	assert.Equal(t, ErrCodeRender, code)
}

func TestCatalogErrors(t *testing.T) {
	notFound := NewCatalogNotFoundError("Nav")
	assert.True(t, IsCatalogNotFound(notFound))
	code, _ := metadata(notFound, MetaKeyCode)
	assert.Equal(t, ErrCodeCatalog, code)

	variant := NewCatalogVariantError("Nav", "wide", Position{Line: 1})
	assert.False(t, IsCatalogNotFound(variant))
	v, ok := metadata(variant, MetaKeyVariant)
	assert.True(t, ok)
	assert.Equal(t, "wide", v)

	storage := NewCatalogError(ErrMsgCatalogQuery, errors.New("db down"))
	assert.False(t, IsCatalogNotFound(storage))
	assert.Contains(t, storage.Error(), ErrMsgCatalogQuery)
}

func TestPredicates_NonCustomErrors(t *testing.T) {
	plain := errors.New("plain")

	assert.False(t, IsInvalidInvocationData(plain))
	assert.False(t, IsUnresolvableTemplate(plain))
	assert.False(t, IsParseError(plain))
	assert.False(t, IsCatalogNotFound(plain))
	assert.False(t, IsInvalidInvocationData(nil))
}

func TestNewParserExistsError(t *testing.T) {
	err := NewParserExistsError("component")

	assert.Contains(t, err.Error(), ErrMsgParserExists)
	tag, ok := metadata(err, MetaKeyTag)
	assert.True(t, ok)
	assert.Equal(t, "component", tag)
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError(ErrMsgConfigRead, "viewtags.yaml", errors.New("missing"))

	assert.Contains(t, err.Error(), ErrMsgConfigRead)
	file, ok := metadata(err, MetaKeyFile)
	assert.True(t, ok)
	assert.Equal(t, "viewtags.yaml", file)
}
