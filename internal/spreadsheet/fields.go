package spreadsheet

import "strings"

// Field is a canonical column name recognized during import
type Field string

const (
	FieldName            Field = "name"
	FieldCategory        Field = "category"
	FieldSerialNumber    Field = "serialNumber"
	FieldInventoryNumber Field = "inventoryNumber"
	FieldPurchaseDate    Field = "purchaseDate"
	FieldCost            Field = "cost"
	FieldLocation        Field = "location"
	FieldResponsible     Field = "responsible"
	FieldStatus          Field = "status"
	FieldManufacturer    Field = "manufacturer"
	FieldModel           Field = "model"
	FieldCondition       Field = "condition"
	FieldTransferTo      Field = "transferTo"
	FieldTransferDate    Field = "transferDate"
	FieldReturnDate      Field = "returnDate"
	FieldNote            Field = "note"
	FieldQuantity        Field = "quantity"
	FieldUnit            Field = "unit"
	FieldSupplier        Field = "supplier"
	FieldDateReceived    Field = "dateReceived"
)

// headerSynonyms maps the many spellings seen in real files (including the
// Russian variants the original sheets use) to canonical fields. Unrecognized
// headers are ignored by the importer.
var headerSynonyms = map[string]Field{
	// name
	"name": FieldName, "наименование": FieldName, "оборудование": FieldName,
	"имя": FieldName, "предмет": FieldName,
	// category
	"category": FieldCategory, "категория": FieldCategory, "раздел": FieldCategory, "тип": FieldCategory,
	// serialNumber
	"serialnumber": FieldSerialNumber, "serial": FieldSerialNumber, "sn": FieldSerialNumber,
	"serial_number": FieldSerialNumber, "серийный": FieldSerialNumber, "серийный номер": FieldSerialNumber,
	// inventoryNumber
	"inventorynumber": FieldInventoryNumber, "инвентарный": FieldInventoryNumber,
	"инв. номер": FieldInventoryNumber, "инвентарный номер": FieldInventoryNumber, "инв": FieldInventoryNumber,
	// purchaseDate
	"purchasedate": FieldPurchaseDate, "дата покупки": FieldPurchaseDate,
	"дата приобретения": FieldPurchaseDate, "дата": FieldPurchaseDate,
	// cost
	"cost": FieldCost, "стоимость": FieldCost, "цена": FieldCost, "цена закупки": FieldCost,
	// location
	"location": FieldLocation, "местоположение": FieldLocation, "локация": FieldLocation,
	"кабинет": FieldLocation, "место": FieldLocation,
	// responsible
	"responsible": FieldResponsible, "ответственный": FieldResponsible,
	"фио": FieldResponsible, "сотрудник": FieldResponsible,
	// status
	"status": FieldStatus, "статус": FieldStatus, "состояние": FieldStatus,
	// manufacturer
	"manufacturer": FieldManufacturer, "производитель": FieldManufacturer,
	// model
	"model": FieldModel, "модель": FieldModel,
	// condition ("состояние" is taken by status; this is the technical state)
	"condition": FieldCondition, "техническое состояние": FieldCondition, "сост.": FieldCondition,
	// transfer
	"transferto": FieldTransferTo, "кому передан": FieldTransferTo, "получатель": FieldTransferTo,
	"transferdate": FieldTransferDate, "дата передачи": FieldTransferDate,
	"returndate": FieldReturnDate, "дата возврата": FieldReturnDate,
	// note
	"note": FieldNote, "примечание": FieldNote,
	// warehouse-only columns
	"quantity": FieldQuantity, "количество": FieldQuantity, "кол-во": FieldQuantity,
	"unit": FieldUnit, "ед.": FieldUnit, "ед": FieldUnit,
	"supplier": FieldSupplier, "поставщик": FieldSupplier,
	"datereceived": FieldDateReceived, "дата поступления": FieldDateReceived,
}

// NormalizeHeader resolves a raw header cell to a canonical field
func NormalizeHeader(header string) (Field, bool) {
	key := strings.ToLower(strings.TrimSpace(header))
	if key == "" {
		return "", false
	}
	field, ok := headerSynonyms[key]
	return field, ok
}

// Record is one imported row keyed by canonical field
type Record map[Field]string

// MapRows converts raw sheet rows into records using the header row.
// Returns false when not a single header is recognized.
func MapRows(rows [][]string) ([]Record, bool) {
	if len(rows) == 0 {
		return nil, false
	}

	headerRow := rows[0]
	mapping := make(map[int]Field)
	for i, h := range headerRow {
		if field, ok := NormalizeHeader(h); ok {
			mapping[i] = field
		}
	}
	if len(mapping) == 0 {
		return nil, false
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record)
		for i, field := range mapping {
			if i < len(row) {
				rec[field] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, rec)
	}
	return records, true
}
