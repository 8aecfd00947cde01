package fieldparse

// VATRegistration is the fiscal identity block of a seller or client.
type VATRegistration struct {
	VATID              string
	RegistrationNumber string
}

var (
	vatAliases = []string{"vat_id", "vat", "vat_number", "tva", "tva_intra"}
	regAliases = []string{"registration_number", "registration", "reg", "reg_number", "siret", "company_registration"}
)

// ExtractVATRegistration scans the candidate fields in order (e.g. a
// seller's other_info, or a client's notes then distributor info). Each field
// is tried as JSON first, then as "KEY: value;" pairs. Fields still missing
// afterwards are read from additional under "{prefix}_vat_id" /
// "{prefix}_registration_number". Unresolvable fields come back as NA.
func ExtractVATRegistration(fields []string, additional map[string]string, prefix string) VATRegistration {
	r := VATRegistration{}
	for _, f := range fields {
		if r.VATID != "" && r.RegistrationNumber != "" {
			break
		}
		if m := JSONOrDefault(f, nil); m != nil {
			if r.VATID == "" {
				r.VATID = firstKey(m, vatAliases...)
			}
			if r.RegistrationNumber == "" {
				r.RegistrationNumber = firstKey(m, regAliases...)
			}
			continue
		}
		if kv := KeyValue(f, nil); kv != nil {
			if r.VATID == "" {
				r.VATID = firstKeyString(kv, vatAliases...)
			}
			if r.RegistrationNumber == "" {
				r.RegistrationNumber = firstKeyString(kv, regAliases...)
			}
		}
	}
	if r.VATID == "" {
		r.VATID = additional[prefix+"_vat_id"]
	}
	if r.RegistrationNumber == "" {
		r.RegistrationNumber = additional[prefix+"_registration_number"]
	}
	if r.VATID == "" {
		r.VATID = NA
	}
	if r.RegistrationNumber == "" {
		r.RegistrationNumber = NA
	}
	return r
}
