package docctx

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/diewo77/exportdocs/internal/docerr"
	"github.com/diewo77/exportdocs/internal/i18n"
	"github.com/diewo77/exportdocs/internal/localize"
)

// PackingItem is one shipped line of a packing list. It deliberately has no
// price field of any kind.
type PackingItem struct {
	MarksNos            string  `json:"marks_nos"`
	ProductID           uint    `json:"product_id,omitempty"`
	ProductNameOverride string  `json:"product_name_override,omitempty"`
	Description         string  `json:"description,omitempty"`
	QuantityDescription string  `json:"quantity_description"`
	NumPackages         int     `json:"num_packages"`
	PackageType         string  `json:"package_type"`
	NetWeightKgItem     float64 `json:"net_weight_kg_item"`
	GrossWeightKgItem   float64 `json:"gross_weight_kg_item"`
	DimensionsCmItem    string  `json:"dimensions_cm_item"`
}

// PackingDetails is the caller-supplied payload under
// additional_context.packing_details.
type PackingDetails struct {
	Items []PackingItem `json:"items"`

	TotalPackages      int     `json:"total_packages"`
	TotalNetWeightKg   float64 `json:"total_net_weight_kg"`
	TotalGrossWeightKg float64 `json:"total_gross_weight_kg"`
	TotalVolumeCBM     float64 `json:"total_volume_cbm"`

	VesselFlightNo          string `json:"vessel_flight_no,omitempty"`
	PortOfLoading           string `json:"port_of_loading,omitempty"`
	PortOfDischarge         string `json:"port_of_discharge,omitempty"`
	FinalDestinationCountry string `json:"final_destination_country,omitempty"`
	NotifyPartyName         string `json:"notify_party_name,omitempty"`
	NotifyPartyAddress      string `json:"notify_party_address,omitempty"`
}

// decodePackingDetails accepts the typed struct directly or a generic JSON
// mapping from an HTTP caller. Schema violations are caller errors.
func decodePackingDetails(v any) (*PackingDetails, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case PackingDetails:
		return &x, nil
	case *PackingDetails:
		return x, nil
	case map[string]any:
		raw, err := json.Marshal(x)
		if err != nil {
			return nil, docerr.Wrap(docerr.InvalidArgument, "packing_details", err)
		}
		var pd PackingDetails
		if err := json.Unmarshal(raw, &pd); err != nil {
			return nil, docerr.Wrap(docerr.InvalidArgument, "packing_details", err)
		}
		return &pd, nil
	default:
		return nil, docerr.New(docerr.InvalidArgument, "packing_details")
	}
}

// renderPackingRows produces the HTML <tr> fragment bound to
// doc.packing_list_items. Product names are resolved through the localiser
// when the item names a product id and carries no override. The fragment
// never contains a price field.
func renderPackingRows(store localize.Store, pd *PackingDetails, languageCode string) (string, error) {
	if pd == nil || len(pd.Items) == 0 {
		return fmt.Sprintf(`<tr><td colspan="8">%s</td></tr>`,
			html.EscapeString(i18n.T(languageCode, "no_products"))), nil
	}
	var b strings.Builder
	for _, item := range pd.Items {
		name := item.ProductNameOverride
		if name == "" && item.ProductID != 0 {
			loc, err := localize.Resolve(store, item.ProductID, languageCode)
			if err != nil {
				return "", err
			}
			name = loc.Name
		}
		desc := name
		if item.Description != "" {
			if desc != "" {
				desc += " - "
			}
			desc += item.Description
		}
		b.WriteString("<tr>")
		writeCell(&b, item.MarksNos)
		writeCell(&b, desc)
		writeCell(&b, item.QuantityDescription)
		writeCell(&b, strconv.Itoa(item.NumPackages))
		writeCell(&b, item.PackageType)
		writeCell(&b, formatWeight(item.NetWeightKgItem))
		writeCell(&b, formatWeight(item.GrossWeightKgItem))
		writeCell(&b, item.DimensionsCmItem)
		b.WriteString("</tr>\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func writeCell(b *strings.Builder, v string) {
	b.WriteString("<td>")
	b.WriteString(html.EscapeString(v))
	b.WriteString("</td>")
}

func formatWeight(kg float64) string {
	return strconv.FormatFloat(kg, 'f', 2, 64)
}
