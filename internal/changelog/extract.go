package changelog

import (
	"fmt"
	"strings"
	"unicode"
)

// ExtractCommon reads the common block whose header is lines[k]:
//
//	ЛБv6Pro Общая часть
//	Версия 6.3.7 от 07.06.20.
//	- Добавлено формирование IFD: сигнатуры
//	- Разрешена отправка признака движения в основном пакете состояния
func ExtractCommon(lines []string, k int, names Lookup) (CommonLog, error) {
	header := lines[k]
	label, _, _ := strings.Cut(header, " ")

	deviceType, ok := names.DeviceType(label)
	if !ok {
		return CommonLog{}, &ParseError{
			Kind:    ErrUnknownDeviceType,
			Line:    k + 1,
			Text:    header,
			Message: fmt.Sprintf("label %q", label),
		}
	}

	if k+1 >= len(lines) {
		return CommonLog{}, &ParseError{
			Kind:    ErrMalformedVersionLine,
			Line:    k + 1,
			Text:    header,
			Message: "header is not followed by a version line",
		}
	}

	versionLine := lines[k+1]
	fields := strings.Fields(versionLine)
	if len(fields) != 4 {
		return CommonLog{}, &ParseError{
			Kind:    ErrMalformedVersionLine,
			Line:    k + 2,
			Text:    versionLine,
			Message: fmt.Sprintf("expected 4 fields (Версия X.Y.Z от dd.mm.yy.), got %d", len(fields)),
		}
	}

	version, err := ParseDotted(fields[1])
	if err != nil {
		return CommonLog{}, &ParseError{
			Kind:    ErrMalformedVersionLine,
			Line:    k + 2,
			Text:    versionLine,
			Message: err.Error(),
		}
	}

	return CommonLog{
		DeviceType: deviceType,
		Version:    version,
		Date:       fields[3],
		Lines:      blockBody(lines, k+2),
	}, nil
}

// ExtractSpecial reads the model block whose header is lines[k]:
//
//	- THYSSEN_GEC:
//	  - При остановке эскалатора - формируется признак "Аварийная блокировка"
//	  - Поддержана спецификация Class4:Type10 - эскалатор
func ExtractSpecial(lines []string, k int, names Lookup) (SpecialLog, error) {
	model := names.Normalize(strings.Trim(lines[k], "- :"))
	return SpecialLog{
		Model: model,
		Lines: blockBody(lines, k+1),
	}, nil
}

// ExtractDevice reads the standalone device block whose header is lines[k]:
//
//	KONE_ESC V1.0.4 05.06.20. (для новых плат)
//	- Исправлена обработка аварии
//
// A trailing parenthesized clause is dropped. The header is split at the first
// capital "V" into the name and the "version date" pair.
func ExtractDevice(lines []string, k int, names Lookup) (DeviceLog, error) {
	header := strings.TrimSpace(lines[k])
	if strings.HasSuffix(header, ")") {
		if i := strings.LastIndex(header, "("); i >= 0 {
			header = header[:i]
		}
	}

	name, rest, found := strings.Cut(header, "V")
	fields := strings.Fields(rest)
	if !found || len(fields) != 2 {
		return DeviceLog{}, &ParseError{
			Kind:    ErrMalformedHeaderLine,
			Line:    k + 1,
			Text:    lines[k],
			Message: fmt.Sprintf("expected \"NAME Vx.y.z dd.mm.yy.\", got %d fields after V", len(fields)),
		}
	}

	version, err := ParseDotted(fields[0])
	if err != nil {
		return DeviceLog{}, &ParseError{
			Kind:    ErrMalformedHeaderLine,
			Line:    k + 1,
			Text:    lines[k],
			Message: err.Error(),
		}
	}

	return DeviceLog{
		Model:   names.Normalize(strings.TrimRightFunc(name, unicode.IsSpace)),
		Version: version,
		Date:    strings.TrimRight(fields[1], "."),
		Lines:   blockBody(lines, k+1),
	}, nil
}

// blockBody collects bullet texts from lines[from] up to the block terminator or end of input.
func blockBody(lines []string, from int) []string {
	body := []string{}
	for i := from; i < len(lines) && !IsBlockEnd(lines[i]); i++ {
		body = append(body, StripBullet(lines[i]))
	}
	return body
}
