package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX(
		Sheet{Name: "Transactions", Headers: []string{"Receipt", "Total"}, Rows: [][]interface{}{{"RCPT-1", 117.7}, {"RCPT-2", 107.7}}},
		Sheet{Name: "Popular Items", Headers: []string{"Item", "Qty"}, Rows: [][]interface{}{{"Soft Drink", 4}}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Transactions", "Popular Items"}, f.GetSheetList())

	v, err := f.GetCellValue("Transactions", "A3")
	require.NoError(t, err)
	assert.Equal(t, "RCPT-2", v)

	v, err = f.GetCellValue("Popular Items", "B2")
	require.NoError(t, err)
	assert.Equal(t, "4", v)
}

func TestWriteXLSX_RequiresSheet(t *testing.T) {
	_, err := WriteXLSX()
	assert.Error(t, err)
}
