package fieldparse

// BankDetails is the seller's bank block as printed on proformas and
// contracts. Unresolvable sub-fields hold NA.
type BankDetails struct {
	BankName          string
	AccountNumber     string
	SwiftBIC          string
	BankAddress       string
	AccountHolderName string
}

// ExtractBankDetails reads paymentInfo (JSON preferred, then "KEY: value;"
// pairs) and patches any still-missing field from the caller's override map
// (keys: bank_name, account_number, swift_bic, bank_address,
// account_holder_name). It never fails; missing fields come back as NA.
func ExtractBankDetails(paymentInfo string, override map[string]string) BankDetails {
	d := BankDetails{}
	if m := JSONOrDefault(paymentInfo, nil); m != nil {
		d.BankName = firstKey(m, "bank_name", "bank")
		d.AccountNumber = firstKey(m, "account_number", "iban", "account_no")
		d.SwiftBIC = firstKey(m, "swift_bic", "swift", "bic")
		d.BankAddress = firstKey(m, "bank_address")
		d.AccountHolderName = firstKey(m, "account_holder_name", "beneficiary", "holder")
	} else if kv := KeyValue(paymentInfo, nil); kv != nil {
		d.BankName = firstKeyString(kv, "bank_name", "bank")
		d.AccountNumber = firstKeyString(kv, "account_number", "iban", "account_no")
		d.SwiftBIC = firstKeyString(kv, "swift_bic", "swift", "bic")
		d.BankAddress = firstKeyString(kv, "bank_address")
		d.AccountHolderName = firstKeyString(kv, "account_holder_name", "beneficiary", "holder")
	}

	patch := func(field *string, key string) {
		if *field == "" {
			*field = override[key]
		}
		if *field == "" {
			*field = NA
		}
	}
	patch(&d.BankName, "bank_name")
	patch(&d.AccountNumber, "account_number")
	patch(&d.SwiftBIC, "swift_bic")
	patch(&d.BankAddress, "bank_address")
	patch(&d.AccountHolderName, "account_holder_name")
	return d
}
