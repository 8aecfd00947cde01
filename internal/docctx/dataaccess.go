package docctx

import "github.com/diewo77/exportdocs/internal/models"

// DataAccess is the read-only surface the assembler consumes. Load methods
// return (nil, nil) when the entity does not exist; errors are reserved for
// infrastructure failures. The caller provides a consistent snapshot; the
// assembler never starts or ends transactions.
type DataAccess interface {
	LoadCompany(id uint) (*models.Company, error)
	LoadDefaultCompany() (*models.Company, error)
	LoadClient(id uint) (*models.Client, error)
	LoadPrimaryContact(clientID uint) (*models.Contact, error)
	LoadProduct(id uint) (*models.Product, error)
	LoadEquivalents(productID uint) ([]models.Product, error)
	LoadClientProducts(clientID uint) ([]models.ClientProductLink, error)
	LoadActiveNote(clientID uint, documentType, languageCode string) (*models.ClientDocumentNote, error)
	LoadDocumentPlaceholders(clientID uint, documentType string) (map[string]string, error)
	LoadTemplate(id uint) (*models.DocumentTemplate, error)
}
