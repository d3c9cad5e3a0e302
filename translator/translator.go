package translator

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translatorOnce sync.Once
	translator     *gst.ShaderTranslator
	translatorErr  error
)

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

// Result is a shader translated to desktop GLSL.
type Result struct {
	Code string
	// MappedNames maps every variable the translator reports (uniforms,
	// inputs, outputs and builtins) from its source name to the emitted name.
	MappedNames map[string]string
}

// IsESSL reports whether the first directive of source is "#version 300 es".
// Comments before and after the directive are ignored.
func IsESSL(source string) bool {
	inBlock := false
	scanner := bufio.NewScanner(strings.NewReader(source))
	for scanner.Scan() {
		line := stripComments(scanner.Text(), &inBlock)
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		return len(fields) == 3 && fields[0] == "#version" && fields[1] == "300" && fields[2] == "es"
	}
	return false
}

// stripComments removes // and /* */ comments from one line. inBlock
// carries an unterminated block comment over to the next line.
func stripComments(line string, inBlock *bool) string {
	var b strings.Builder
	for len(line) > 0 {
		if *inBlock {
			end := strings.Index(line, "*/")
			if end < 0 {
				return b.String()
			}
			line = line[end+2:]
			*inBlock = false
			b.WriteByte(' ')
			continue
		}
		lineComment := strings.Index(line, "//")
		blockComment := strings.Index(line, "/*")
		switch {
		case blockComment >= 0 && (lineComment < 0 || blockComment < lineComment):
			b.WriteString(line[:blockComment])
			line = line[blockComment+2:]
			*inBlock = true
		case lineComment >= 0:
			b.WriteString(line[:lineComment])
			return b.String()
		default:
			b.WriteString(line)
			return b.String()
		}
	}
	return b.String()
}

// ToDesktop translates an ESSL 3.00 shader stage ("vertex" or "fragment")
// to GLSL 4.10.
func ToDesktop(source, stage string) (*Result, error) {
	if stage != "vertex" && stage != "fragment" {
		return nil, fmt.Errorf("unknown shader stage: %s", stage)
	}
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	out, err := t.TranslateShader(source, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}

	res := &Result{
		Code:        out.Code,
		MappedNames: make(map[string]string, len(out.Variables)),
	}
	for name, v := range out.Variables {
		res.MappedNames[name] = v.MappedName
	}
	return res, nil
}
