package transferact

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fumiama/go-docx"
)

// monthsGenitive are the Russian month names used in the act date line
var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

const blank = "______________________"

// DocxRenderer renders the fixed transfer-act template into a .docx file
type DocxRenderer struct{}

// NewDocxRenderer creates a new docx renderer
func NewDocxRenderer() *DocxRenderer {
	return &DocxRenderer{}
}

// Render builds the document: header, title, date line, the parties, the
// equipment table and the remarks block. Layout follows the paper form used
// for hand-signed transfers.
func (r *DocxRenderer) Render(act Act) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	header := w.AddParagraph().Justification("right")
	header.AddText("Приложение к приказу").Size("20")

	w.AddParagraph()
	title := w.AddParagraph().Justification("center")
	title.AddText("АКТ № ______").Size("28").Bold()
	subtitle := w.AddParagraph().Justification("center")
	subtitle.AddText("приёма-передачи оборудования").Size("24")

	w.AddParagraph()
	dateLine := w.AddParagraph().Justification("right")
	dateLine.AddText(fmt.Sprintf("«%02d» %s %d г.",
		act.Date.Day(), monthsGenitive[act.Date.Month()-1], act.Date.Year())).Size("22")

	w.AddParagraph()
	from := act.From
	if from == "" {
		from = blank
	}
	to := act.To
	if to == "" {
		to = blank
	}
	w.AddParagraph().AddText(fmt.Sprintf("Я, %s,", from)).Size("22")
	w.AddParagraph().AddText(fmt.Sprintf("передал(а) %s следующее оборудование:", to)).Size("22")

	w.AddParagraph()
	if err := r.renderTable(w, act.Items); err != nil {
		return nil, err
	}

	w.AddParagraph()
	note := act.Note
	if note == "" {
		note = blank
	}
	w.AddParagraph().AddText("Замечания: " + note).Size("22")

	w.AddParagraph()
	w.AddParagraph().AddText("Передал: " + blank).Size("22")
	w.AddParagraph().AddText("Принял: " + blank).Size("22")

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *DocxRenderer) renderTable(w *docx.Docx, items []ActItem) error {
	headers := []string{"№ п/п", "Наименование оборудования", "Ед. изм.", "Кол-во"}

	table := w.AddTable(len(items)+1, len(headers), 9000, nil)
	for c, h := range headers {
		cell := table.TableRows[0].TableCells[c]
		cell.AddParagraph().Justification("center").AddText(h).Size("22").Bold()
	}

	for i, item := range items {
		row := table.TableRows[i+1]
		unit := item.Unit
		if unit == "" {
			unit = "шт"
		}
		row.TableCells[0].AddParagraph().Justification("center").AddText(strconv.Itoa(i + 1)).Size("22")
		row.TableCells[1].AddParagraph().AddText(item.Name).Size("22")
		row.TableCells[2].AddParagraph().Justification("center").AddText(unit).Size("22")
		row.TableCells[3].AddParagraph().Justification("center").AddText(strconv.Itoa(item.Qty)).Size("22")
	}
	return nil
}
