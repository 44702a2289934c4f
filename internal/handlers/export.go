package handlers

import (
	"net/http"
	"time"

	"scp-dashboard/internal/export"
)

// HandleExport streams the current dashboard pass as an xlsx workbook.
func (h *APIHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	f, err := filterSpec(r)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}

	data, err := h.dashboard.Render(r.Context(), f)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}

	wb, err := export.Workbook(data)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	defer wb.Close()

	filename := "supply-chain-report-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := wb.Write(w); err != nil {
		h.logger.Error("write workbook", "error", err)
	}
}
