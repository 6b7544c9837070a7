/*
Copyright © 2026 the scc authors.
This file is part of scc, a social cost of greenhouse gases calculator.

scc is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

scc is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with scc.  If not, see <http://www.gnu.org/licenses/>.
*/

package tables

import (
	"fmt"
	"math"

	"github.com/tealeg/xlsx"
)

// writeWorkbook writes each table to its own sheet of a Microsoft
// Excel file.
func writeWorkbook(name string, tables []*table) error {
	f := xlsx.NewFile()
	for _, t := range tables {
		sheet, err := f.AddSheet(t.name)
		if err != nil {
			return fmt.Errorf("tables: adding sheet %s: %v", t.name, err)
		}
		r := sheet.AddRow()
		for _, h := range t.header {
			r.AddCell().SetString(h)
		}
		for _, row := range t.rows {
			r := sheet.AddRow()
			for _, v := range row {
				c := r.AddCell()
				switch vv := v.(type) {
				case float64:
					if math.IsNaN(vv) {
						continue // Leave the cell empty.
					}
					c.SetFloat(vv)
				case int:
					c.SetInt(vv)
				default:
					c.SetString(fmt.Sprint(v))
				}
			}
		}
	}
	if err := f.Save(name); err != nil {
		return fmt.Errorf("tables: saving %s: %v", name, err)
	}
	return nil
}
