package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/analysis"
	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/config"
	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/models"
)

// viewResponse wraps every view payload. When the filter selection
// matches zero rows the view reports no_data instead of failing, so
// the frontend can render its empty state.
type viewResponse struct {
	NoData   bool        `json:"no_data"`
	Message  string      `json:"message,omitempty"`
	RowCount int         `json:"row_count"`
	Data     interface{} `json:"data,omitempty"`
}

func GetExecutiveView(w http.ResponseWriter, r *http.Request) {
	serveView(w, r, "executive", func(v *analysis.FilteredView) (interface{}, error) {
		return analysis.ExecutiveSummary(v)
	})
}

func GetDemographicView(w http.ResponseWriter, r *http.Request) {
	serveView(w, r, "demographics", func(v *analysis.FilteredView) (interface{}, error) {
		return analysis.Demographics(v)
	})
}

func GetProvincialView(w http.ResponseWriter, r *http.Request) {
	serveView(w, r, "provinces", func(v *analysis.FilteredView) (interface{}, error) {
		return analysis.Provincial(v)
	})
}

func GetServiceUsageView(w http.ResponseWriter, r *http.Request) {
	serveView(w, r, "services", func(v *analysis.FilteredView) (interface{}, error) {
		return analysis.ServiceUsage(v)
	})
}

func GetSegmentationView(w http.ResponseWriter, r *http.Request) {
	serveView(w, r, "segments", func(v *analysis.FilteredView) (interface{}, error) {
		return analysis.Segmentation(v)
	})
}

func GetPolicyInsightsView(w http.ResponseWriter, r *http.Request) {
	serveView(w, r, "policy", func(v *analysis.FilteredView) (interface{}, error) {
		return analysis.PolicyInsights(v)
	})
}

func serveView(w http.ResponseWriter, r *http.Request, name string, compute func(*analysis.FilteredView) (interface{}, error)) {
	snap := store.Snapshot()
	if snap == nil {
		sendErrorResponse(w, "Dataset not loaded", http.StatusServiceUnavailable)
		return
	}

	provinces, urbanRural, err := parseFilters(r, snap)
	if err != nil {
		sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	cacheKey := viewCacheKey(name, provinces, urbanRural)
	if config.ViewCache != nil {
		if cached, ok := config.ViewCache.Get(cacheKey); ok {
			sendJSON(w, cached)
			return
		}
	}

	view := analysis.ApplyFilters(snap.Merged, provinces, urbanRural)
	result, err := compute(view)
	if err != nil {
		var empty *models.EmptyInputError
		if errors.As(err, &empty) {
			sendJSON(w, viewResponse{NoData: true, Message: empty.Error()})
			return
		}
		log.Errorf("Error computing %s view: %v", name, err)
		sendErrorResponse(w, "Error computing view", http.StatusInternalServerError)
		return
	}

	response := viewResponse{RowCount: view.Len(), Data: result}
	if config.ViewCache != nil {
		config.ViewCache.SetDefault(cacheKey, response)
	}
	sendJSON(w, response)
}

// parseFilters reads the filter controls from the query string. An
// absent provinces parameter means the dashboard default (all
// provinces); a present-but-empty one is the empty selection, which
// deliberately matches nothing.
func parseFilters(r *http.Request, snap *Snapshot) (map[string]bool, models.UrbanRuralFilter, error) {
	q := r.URL.Query()

	urbanRural := models.UrbanRuralAll
	if s := q.Get("urban_rural"); s != "" {
		switch models.UrbanRuralFilter(s) {
		case models.UrbanRuralAll, models.UrbanOnly, models.RuralOnly:
			urbanRural = models.UrbanRuralFilter(s)
		default:
			return nil, "", fmt.Errorf("invalid urban_rural value %q: must be All, Urban or Rural", s)
		}
	}

	provinces := make(map[string]bool)
	values, present := q["provinces"]
	if !present {
		for _, p := range snap.Provinces {
			provinces[p] = true
		}
		return provinces, urbanRural, nil
	}
	for _, value := range values {
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				provinces[p] = true
			}
		}
	}
	return provinces, urbanRural, nil
}

func viewCacheKey(name string, provinces map[string]bool, urbanRural models.UrbanRuralFilter) string {
	selected := make([]string, 0, len(provinces))
	for p := range provinces {
		selected = append(selected, p)
	}
	sort.Strings(selected)
	return config.GetCacheKey("view", name, strings.Join(selected, ","), urbanRural)
}

func sendJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("Error encoding response: %v", err)
	}
}

func sendErrorResponse(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": message,
		"code":  code,
	})
}
