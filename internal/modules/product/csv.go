package product

import "strings"

// Row is one parsed CSV record, keyed by trimmed header name.
type Row map[string]string

// SerializeCSV renders rows under the given column order: a header line
// followed by one line per row, joined by newline. An empty row slice
// produces the empty string; callers guard that case. Values containing a
// comma, double quote, or newline are wrapped in double quotes with inner
// quotes doubled.
func SerializeCSV(columns []string, rows []Row) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	for i, col := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCSVField(col))
	}
	for _, row := range rows {
		b.WriteByte('\n')
		for i, col := range columns {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeCSVField(row[col]))
		}
	}
	return b.String()
}

func escapeCSVField(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// ParseCSV parses tabular text: blank lines are discarded, the first
// remaining line is the header, and each data line is split with a
// quote-aware comma splitter. Data lines whose field count does not match
// the header count are silently dropped; that leniency is deliberate and
// pinned by tests. Header names and values are trimmed.
func ParseCSV(text string) []Row {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	headers := splitCSVLine(lines[0])
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitCSVLine(line)
		if len(fields) != len(headers) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			row[h] = strings.TrimSpace(fields[i])
		}
		rows = append(rows, row)
	}
	return rows
}

// splitCSVLine splits one line on commas outside double quotes. A doubled
// quote inside a quoted field is a literal quote.
func splitCSVLine(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	fields = append(fields, field.String())
	return fields
}
