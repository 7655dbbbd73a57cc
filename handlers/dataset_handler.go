package handlers

import (
	"fmt"
	"net/http"

	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/models"
)

// GetFilterOptions returns the values the dashboard's filter controls
// offer: the distinct provinces in the loaded dataset and the
// urban/rural choices.
func GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	snap := store.Snapshot()
	if snap == nil {
		sendErrorResponse(w, "Dataset not loaded", http.StatusServiceUnavailable)
		return
	}

	sendJSON(w, map[string]interface{}{
		"provinces":   snap.Provinces,
		"urban_rural": []models.UrbanRuralFilter{models.UrbanRuralAll, models.UrbanOnly, models.RuralOnly},
		"views":       []string{"executive", "demographics", "provinces", "services", "segments", "policy"},
	})
}

// GetDatasetInfo reports the loaded dataset's shape and the join
// diagnostics, so dropped or duplicated survey rows are observable.
func GetDatasetInfo(w http.ResponseWriter, r *http.Request) {
	snap := store.Snapshot()
	if snap == nil {
		sendErrorResponse(w, "Dataset not loaded", http.StatusServiceUnavailable)
		return
	}

	sendJSON(w, map[string]interface{}{
		"demographics_rows":        len(snap.Tables.Demographics),
		"services_rows":            len(snap.Tables.Services),
		"merged_rows":              len(snap.Merged.Rows),
		"join_diagnostics":         snap.Merged.Diagnostics,
		"quintile_income_bounds":   snap.Merged.QuintileBounds,
		"demographics_fingerprint": fmt.Sprintf("%016x", snap.Tables.DemographicsFingerprint),
		"services_fingerprint":     fmt.Sprintf("%016x", snap.Tables.ServicesFingerprint),
	})
}

// ReloadDataset re-reads the configured source and swaps in a fresh
// snapshot. A failed reload leaves the current snapshot serving.
func ReloadDataset(w http.ResponseWriter, r *http.Request) {
	if err := store.Load(r.Context()); err != nil {
		log.Errorf("Dataset reload failed: %v", err)
		sendErrorResponse(w, fmt.Sprintf("Reload failed: %v", err), http.StatusInternalServerError)
		return
	}

	snap := store.Snapshot()
	sendJSON(w, map[string]interface{}{
		"reloaded":    true,
		"merged_rows": len(snap.Merged.Rows),
	})
}
