// Package docctx assembles the render context consumed by every document
// template: seller, client, contact person, document payload, localised
// product lines, and the flat placeholder map.
package docctx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/exportdocs/internal/docerr"
	"github.com/diewo77/exportdocs/internal/fieldparse"
	"github.com/diewo77/exportdocs/internal/localize"
	"github.com/diewo77/exportdocs/internal/models"
)

// Assembler builds contexts over an injected read-only data layer. It holds
// no state besides its collaborators and is safe for concurrent use as long
// as each call gets a consistent snapshot.
type Assembler struct {
	data DataAccess
	now  func() time.Time
}

func New(data DataAccess) *Assembler {
	return &Assembler{data: data, now: time.Now}
}

// WithClock overrides the clock, for deterministic output in tests.
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	a.now = now
	return a
}

// Keys of additional_context consumed by the assembler itself. Anything
// else passes through into doc untouched.
var recognizedKeys = map[string]bool{
	"document_type":                   true,
	"current_document_type_for_notes": true,
	"current_year":                    true,
	"creation_date":                   true,
	"invoice_id":                      true,
	"packing_list_id":                 true,
	"project_id":                      true,
	"packing_details":                 true,
	"seller_bank_name":                true,
	"seller_bank_account_number":      true,
	"seller_bank_swift_bic":           true,
	"seller_bank_address":             true,
	"seller_bank_account_holder_name": true,
	"seller_vat_id":                   true,
	"seller_registration_number":      true,
	"seller_city":                     true,
	"seller_postal_code":              true,
	"seller_country":                  true,
	"client_vat_id":                   true,
	"client_registration_number":      true,
	"client_address_line1":            true,
	"client_city":                     true,
	"client_postal_code":              true,
	"client_country":                  true,
}

// Assemble produces the full context for (client, seller, language, document
// type). sellerCompanyID zero selects the default company. It either returns
// a complete context or fails with a NotFound/InvalidArgument kind; partial
// results never escape.
func (a *Assembler) Assemble(clientID, sellerCompanyID uint, languageCode, documentType string, extra Values) (*Context, error) {
	if strings.TrimSpace(languageCode) == "" {
		return nil, docerr.New(docerr.InvalidArgument, "language_code")
	}
	if strings.TrimSpace(documentType) == "" {
		return nil, docerr.New(docerr.InvalidArgument, "document_type")
	}
	if extra == nil {
		extra = Values{}
	}

	seller, err := a.loadSeller(sellerCompanyID)
	if err != nil {
		return nil, err
	}
	client, err := a.data.LoadClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("load client %d: %w", clientID, err)
	}
	if client == nil {
		return nil, docerr.NotFoundf("client %d", clientID)
	}
	contact, err := a.data.LoadPrimaryContact(clientID)
	if err != nil {
		return nil, fmt.Errorf("load primary contact of client %d: %w", clientID, err)
	}

	if dt := extra.Str("document_type"); dt != "" {
		documentType = dt
	}

	ctx := &Context{}
	overrides := extra.stringValues()
	sellerVAT := fieldparse.ExtractVATRegistration([]string{seller.OtherInfo}, overrides, "seller")
	ctx.Seller = a.buildSeller(seller, sellerVAT, extra, overrides)
	clientVAT := fieldparse.ExtractVATRegistration([]string{client.Notes, client.DistributorSpecificInfo}, overrides, "client")
	ctx.Client = a.buildClient(client, contact, clientVAT, extra)
	ctx.ContactPerson = buildContactPerson(contact)

	doc, err := a.buildDoc(clientID, documentType, languageCode, extra)
	if err != nil {
		return nil, err
	}
	ctx.Doc = doc

	if !models.IsPackingList(documentType) {
		lines, err := a.buildProducts(clientID, languageCode)
		if err != nil {
			return nil, err
		}
		ctx.Products = lines
	}

	ph, err := a.buildPlaceholders(clientID, documentType, seller, ctx, sellerVAT, clientVAT)
	if err != nil {
		return nil, err
	}
	ctx.Placeholders = ph
	return ctx, nil
}

func (a *Assembler) loadSeller(id uint) (*models.Company, error) {
	if id == 0 {
		c, err := a.data.LoadDefaultCompany()
		if err != nil {
			return nil, fmt.Errorf("load default company: %w", err)
		}
		if c == nil {
			return nil, docerr.New(docerr.NotFound, "default seller company")
		}
		return c, nil
	}
	c, err := a.data.LoadCompany(id)
	if err != nil {
		return nil, fmt.Errorf("load company %d: %w", id, err)
	}
	if c == nil {
		return nil, docerr.NotFoundf("seller company %d", id)
	}
	return c, nil
}

func (a *Assembler) buildSeller(seller *models.Company, vat fieldparse.VATRegistration, extra Values, overrides map[string]string) map[string]string {
	line1 := firstLine(seller.Address)
	city := extra.Str("seller_city")
	postal := extra.Str("seller_postal_code")
	country := extra.Str("seller_country")

	address := fieldparse.FormatAddress(line1, city, postal, country)
	if city == "" && postal == "" && country == "" {
		// No structured parts anywhere: keep the raw stored address.
		if raw := joinLines(seller.Address); raw != "" {
			address = raw
		}
	}

	bankOverride := map[string]string{
		"bank_name":           overrides["seller_bank_name"],
		"account_number":      overrides["seller_bank_account_number"],
		"swift_bic":           overrides["seller_bank_swift_bic"],
		"bank_address":        overrides["seller_bank_address"],
		"account_holder_name": overrides["seller_bank_account_holder_name"],
	}
	bank := fieldparse.ExtractBankDetails(seller.PaymentInfo, bankOverride)

	return map[string]string{
		"company_name":             seller.LegalName,
		"address_line1":            line1,
		"city":                     city,
		"postal_code":              postal,
		"country":                  country,
		"city_zip_country":         fieldparse.FormatAddress("", city, postal, country),
		"address":                  address,
		"email":                    seller.Email,
		"phone":                    seller.Phone,
		"website":                  seller.Website,
		"vat_id":                   vat.VATID,
		"registration_number":      vat.RegistrationNumber,
		"bank_name":                bank.BankName,
		"bank_account_number":      bank.AccountNumber,
		"bank_swift_bic":           bank.SwiftBIC,
		"bank_address":             bank.BankAddress,
		"bank_account_holder_name": bank.AccountHolderName,
		"company_logo_path":        seller.LogoPath,
	}
}

func (a *Assembler) buildClient(client *models.Client, contact *models.Contact, vat fieldparse.VATRegistration, extra Values) map[string]string {
	var cLine1, cCity, cPostal, cCountry string
	if contact != nil {
		cLine1, cCity, cPostal, cCountry = contact.StreetAddress, contact.City, contact.PostalCode, contact.Country
	}
	// Per-field precedence: primary contact, then client row, then
	// additional-context overrides.
	line1 := firstValue(cLine1, client.AddressLine1, extra.Str("client_address_line1"))
	city := firstValue(cCity, client.CityName, extra.Str("client_city"))
	postal := firstValue(cPostal, client.PostalCode, extra.Str("client_postal_code"))
	country := firstValue(cCountry, client.CountryName, extra.Str("client_country"))

	email := client.Email
	phone := client.Phone
	if contact != nil {
		email = firstValue(email, contact.Email)
		phone = firstValue(phone, contact.Phone)
	}

	companyName := firstValue(client.CompanyName, client.DisplayName)
	return map[string]string{
		"company_name":        companyName,
		"address_line1":       line1,
		"city":                city,
		"postal_code":         postal,
		"country":             country,
		"city_zip_country":    fieldparse.FormatAddress("", city, postal, country),
		"address":             fieldparse.FormatAddress(line1, city, postal, country),
		"email":               email,
		"phone":               phone,
		"vat_id":              vat.VATID,
		"registration_number": vat.RegistrationNumber,
		"project_identifier":  client.ProjectIdentifier,
	}
}

func buildContactPerson(contact *models.Contact) map[string]string {
	m := map[string]string{
		"full_name":           "",
		"email":               "",
		"phone":               "",
		"address_line1":       "",
		"address_city":        "",
		"address_postal_code": "",
		"address_country":     "",
	}
	if contact == nil {
		return m
	}
	m["full_name"] = contact.FullName()
	m["email"] = contact.Email
	m["phone"] = contact.Phone
	m["address_line1"] = contact.StreetAddress
	m["address_city"] = contact.City
	m["address_postal_code"] = contact.PostalCode
	m["address_country"] = contact.Country
	return m
}

func (a *Assembler) buildDoc(clientID uint, documentType, languageCode string, extra Values) (map[string]any, error) {
	doc := map[string]any{
		"document_type":   documentType,
		"invoice_id":      extra.Str("invoice_id"),
		"packing_list_id": extra.Str("packing_list_id"),
		"project_id":      extra.Str("project_id"),
	}

	year := extra.Int("current_year")
	if year == 0 {
		year = a.now().Year()
	}
	doc["current_year"] = year

	creation := extra.Str("creation_date")
	if creation == "" {
		creation = a.now().Format("2006-01-02")
	}
	doc["creation_date"] = creation

	if models.IsPackingList(documentType) {
		pd, err := decodePackingDetails(extra["packing_details"])
		if err != nil {
			return nil, err
		}
		rows, err := renderPackingRows(a.data, pd, languageCode)
		if err != nil {
			return nil, err
		}
		doc["packing_list_items"] = rows
		var totalNet, totalGross, totalVolume float64
		var totalPackages int
		if pd != nil {
			totalNet, totalGross = pd.TotalNetWeightKg, pd.TotalGrossWeightKg
			totalVolume, totalPackages = pd.TotalVolumeCBM, pd.TotalPackages
			setIfNotEmpty(doc, "vessel_flight_no", pd.VesselFlightNo)
			setIfNotEmpty(doc, "port_of_loading", pd.PortOfLoading)
			setIfNotEmpty(doc, "port_of_discharge", pd.PortOfDischarge)
			setIfNotEmpty(doc, "final_destination_country", pd.FinalDestinationCountry)
			setIfNotEmpty(doc, "notify_party_name", pd.NotifyPartyName)
			setIfNotEmpty(doc, "notify_party_address", pd.NotifyPartyAddress)
		}
		doc["total_net_weight"] = formatWeight(totalNet) + " kg"
		doc["total_gross_weight"] = formatWeight(totalGross) + " kg"
		doc["total_volume_cbm"] = formatWeight(totalVolume) + " CBM"
		doc["total_packages"] = strconv.Itoa(totalPackages)
	}

	noteType := extra.Str("current_document_type_for_notes")
	if noteType == "" {
		noteType = documentType
	}
	note, err := a.data.LoadActiveNote(clientID, noteType, languageCode)
	if err != nil {
		return nil, fmt.Errorf("load note for client %d: %w", clientID, err)
	}
	if note != nil {
		doc["client_specific_footer_notes"] = note.NoteContent
	} else {
		doc["client_specific_footer_notes"] = ""
	}

	// Unrecognised caller keys pass through for template consumption.
	for _, k := range sortedKeys(extra) {
		if recognizedKeys[k] {
			continue
		}
		if s, ok := extra[k].(string); ok && s == "" {
			continue
		}
		doc[k] = extra[k]
	}
	return doc, nil
}

func (a *Assembler) buildProducts(clientID uint, languageCode string) ([]ProductLine, error) {
	links, err := a.data.LoadClientProducts(clientID)
	if err != nil {
		return nil, fmt.Errorf("load products of client %d: %w", clientID, err)
	}
	lines := make([]ProductLine, 0, len(links))
	for i := range links {
		link := &links[i]
		loc, err := localize.Resolve(a.data, link.ProductID, languageCode)
		if err != nil {
			return nil, err
		}
		unit := link.Quantity
		price := link.EffectiveUnitPrice()
		lines = append(lines, ProductLine{
			Name:          loc.Name,
			Description:   loc.Description,
			Quantity:      unit,
			UnitPrice:     price,
			TotalPrice:    price * unit,
			UnitOfMeasure: loc.UnitOfMeasure,
			Weight:        formatFloat(loc.WeightKg),
			Dimensions:    loc.Dimensions,
		})
	}
	return lines, nil
}

func (a *Assembler) buildPlaceholders(clientID uint, documentType string, seller *models.Company, ctx *Context, sellerVAT, clientVAT fieldparse.VATRegistration) (map[string]string, error) {
	ph := map[string]string{
		"SELLER_COMPANY_NAME": orNA(seller.LegalName),
		"SELLER_ADDRESS":      orNA(ctx.Seller["address"]),
		"SELLER_VAT_ID":       sellerVAT.VATID,
		"BUYER_COMPANY_NAME":  orNA(ctx.Client["company_name"]),
		"BUYER_ADDRESS":       orNA(ctx.Client["address"]),
		"CLIENT_VAT_ID":       clientVAT.VATID,
	}
	extra, err := a.data.LoadDocumentPlaceholders(clientID, documentType)
	if err != nil {
		return nil, fmt.Errorf("load placeholders for client %d: %w", clientID, err)
	}
	for _, k := range sortedKeys(extra) {
		ph[strings.ToUpper(k)] = orNA(extra[k])
	}
	return ph, nil
}

// stringValues flattens the extra bag into the string-only override map the
// field parsers consume.
func (v Values) stringValues() map[string]string {
	out := make(map[string]string, len(v))
	for k := range v {
		if s := v.Str(k); s != "" {
			out[k] = s
		}
	}
	return out
}

func setIfNotEmpty(doc map[string]any, key, value string) {
	if value != "" {
		doc[key] = value
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return fieldparse.NA
	}
	return s
}

// firstValue returns the first candidate that is non-empty and not the
// literal "None".
func firstValue(candidates ...string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c != "" && c != "None" {
			return c
		}
	}
	return ""
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// joinLines renders a multi-line stored address on one line.
func joinLines(s string) string {
	var parts []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, ", ")
}
