// internal/app/features/home/export.go
package home

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/dalemusser/casehub/internal/app/system/casefilter"
	"github.com/dalemusser/casehub/internal/app/system/csvutil"
	"github.com/dalemusser/casehub/internal/app/system/hub"
	"github.com/dalemusser/casehub/internal/app/system/viewdata"
	"github.com/dalemusser/casehub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeExport downloads the cases matching the list filters as CSV.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	crit := casefilter.FromValues(r.URL.Query())

	var (
		buf bytes.Buffer
		n   int
	)
	if err := h.view(r, func(st *hub.State) error {
		matched := casefilter.Apply(st.Cases.All(), crit)
		var err error
		n, err = csvutil.WriteCases(&buf, matched, func(c models.Case) string {
			return viewdata.PlacementLabel(st.Catalog, c.DivisionID, c.DepartmentID, c.SectionID)
		})
		return err
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "export cases failed", err, "Could not export cases.", "/list")
		return
	}

	h.Log.Debug("cases exported", zap.Int("rows", n))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="cases.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}
