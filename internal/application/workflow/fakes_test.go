package workflow_test

import (
	"context"

	"github.com/jhoicas/Activos-api/internal/application/workflow"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el motor de flujo. Slices en vez de maps para que los
// listados conserven el orden de inserción (los mensajes de error dependen de él).
// ──────────────────────────────────────────────────────────────────────────────

type fakeCertRepo struct {
	certs []*entity.InspectionCertificate
}

func (r *fakeCertRepo) Create(cert *entity.InspectionCertificate) error {
	r.certs = append(r.certs, cert)
	return nil
}

func (r *fakeCertRepo) GetByID(id string) (*entity.InspectionCertificate, error) {
	for _, c := range r.certs {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCertRepo) GetByContractNo(contractNo string) (*entity.InspectionCertificate, error) {
	if contractNo == "" {
		return nil, nil
	}
	for _, c := range r.certs {
		if c.ContractNo == contractNo {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCertRepo) GetByIDForUpdate(id string) (*entity.InspectionCertificate, error) {
	return r.GetByID(id)
}

func (r *fakeCertRepo) Update(cert *entity.InspectionCertificate) error { return nil }

func (r *fakeCertRepo) AdvanceStage(id, expectedStage, newStage, newStatus string) (bool, error) {
	for _, c := range r.certs {
		if c.ID == id && c.Stage == expectedStage {
			c.Stage = newStage
			c.Status = newStatus
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCertRepo) MarkRejected(id, expectedStage, reason, rejectedBy string) (bool, error) {
	for _, c := range r.certs {
		if c.ID == id && c.Stage == expectedStage {
			c.Stage = entity.StageRejected
			c.Status = entity.StatusCancelled
			c.RejectionReason = reason
			c.RejectedBy = rejectedBy
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCertRepo) ListByDepartment(departmentID string, limit, offset int) ([]*entity.InspectionCertificate, error) {
	var out []*entity.InspectionCertificate
	for _, c := range r.certs {
		if c.DepartmentID == departmentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCertRepo) List(limit, offset int) ([]*entity.InspectionCertificate, error) {
	return r.certs, nil
}

type fakeItemRepo struct {
	items []*entity.InspectionItem
}

func (r *fakeItemRepo) Create(item *entity.InspectionItem) error {
	r.items = append(r.items, item)
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.InspectionItem, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) Update(item *entity.InspectionItem) error { return nil }

func (r *fakeItemRepo) ListByCertificate(certificateID string) ([]*entity.InspectionItem, error) {
	var out []*entity.InspectionItem
	for _, it := range r.items {
		if it.CertificateID == certificateID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) ListByCertificateForUpdate(certificateID string) ([]*entity.InspectionItem, error) {
	return r.ListByCertificate(certificateID)
}

func (r *fakeItemRepo) CountLinksToItem(catalogItemID, excludeCertificateID string) (int, error) {
	count := 0
	for _, it := range r.items {
		if it.LinkedItemID == catalogItemID && it.CertificateID != excludeCertificateID {
			count++
		}
	}
	return count, nil
}

type fakeCatalogRepo struct {
	items []*entity.Item
}

func (r *fakeCatalogRepo) Create(item *entity.Item) error {
	r.items = append(r.items, item)
	return nil
}

func (r *fakeCatalogRepo) GetByID(id string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (r *fakeCatalogRepo) GetByCode(code string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.Code == code {
			return it, nil
		}
	}
	return nil, nil
}

func (r *fakeCatalogRepo) Update(item *entity.Item) error { return nil }

func (r *fakeCatalogRepo) Search(query string, limit int) ([]*entity.Item, error) {
	return r.items, nil
}

func (r *fakeCatalogRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.items {
		if it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) List(limit, offset int) ([]*entity.Item, error) { return r.items, nil }

func (r *fakeCatalogRepo) ListCreatedByCertificate(certificateID string) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.items {
		if it.CreatedByCertificateID == certificateID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) Delete(id string) error {
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeCategoryRepo struct {
	cats []*entity.Category
	// los ítems se consultan para el chequeo referencial del cleanup
	catalog *fakeCatalogRepo
}

func (r *fakeCategoryRepo) Create(category *entity.Category) error {
	r.cats = append(r.cats, category)
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	for _, c := range r.cats {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) GetByCode(code string) (*entity.Category, error) {
	for _, c := range r.cats {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) ListBroader() ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.cats {
		if c.IsBroader() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) ListByParent(parentID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.cats {
		if c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) CountItems(categoryID string) (int, error) {
	count := 0
	for _, it := range r.catalog.items {
		if it.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCategoryRepo) ListCreatedByCertificate(certificateID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.cats {
		if c.CreatedByCertificateID == certificateID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(id string) error {
	for i, c := range r.cats {
		if c.ID == id {
			r.cats = append(r.cats[:i], r.cats[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeDeptRepo struct {
	depts []*entity.Department
}

func (r *fakeDeptRepo) Create(dept *entity.Department) error {
	r.depts = append(r.depts, dept)
	return nil
}

func (r *fakeDeptRepo) GetByID(id string) (*entity.Department, error) {
	for _, d := range r.depts {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDeptRepo) List() ([]*entity.Department, error) { return r.depts, nil }

type fakeLocRepo struct {
	locs []*entity.Location
}

func (r *fakeLocRepo) Create(loc *entity.Location) error {
	r.locs = append(r.locs, loc)
	return nil
}

func (r *fakeLocRepo) GetByID(id string) (*entity.Location, error) {
	for _, l := range r.locs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLocRepo) List() ([]*entity.Location, error) { return r.locs, nil }

type fakeStockRepo struct {
	entries []*entity.StockEntry
}

func (r *fakeStockRepo) Create(entry *entity.StockEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeStockRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	for _, e := range r.entries {
		if e.ItemID == itemID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) ListByCertificate(certificateID string) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	for _, e := range r.entries {
		if e.SourceCertificateID == certificateID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) CountByItem(itemID string) (int, error) {
	entries, _ := r.ListByItem(itemID, 0, 0)
	return len(entries), nil
}

// fakeTxRunner pasa siempre los mismos fakes: las "transacciones" comparten el estado
// en memoria, suficiente para probar la lógica de transiciones.
type fakeTxRunner struct {
	certs   *fakeCertRepo
	items   *fakeItemRepo
	catalog *fakeCatalogRepo
	cats    *fakeCategoryRepo
	stock   *fakeStockRepo
}

var _ workflow.TxRunner = (*fakeTxRunner)(nil)

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(
	certRepo repository.CertificateRepository,
	itemRepo repository.InspectionItemRepository,
	catalogRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	stockRepo repository.StockEntryRepository,
) error) error {
	return fn(tx.certs, tx.items, tx.catalog, tx.cats, tx.stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés de pruebas
// ──────────────────────────────────────────────────────────────────────────────

type harness struct {
	engine     *workflow.Engine
	reconciler *workflow.Reconciler
	certs      *fakeCertRepo
	items      *fakeItemRepo
	catalog    *fakeCatalogRepo
	cats       *fakeCategoryRepo
	depts      *fakeDeptRepo
	locs       *fakeLocRepo
	stock      *fakeStockRepo
}

func newHarness() *harness {
	certs := &fakeCertRepo{}
	items := &fakeItemRepo{}
	catalog := &fakeCatalogRepo{}
	cats := &fakeCategoryRepo{catalog: catalog}
	depts := &fakeDeptRepo{}
	locs := &fakeLocRepo{}
	stock := &fakeStockRepo{}
	tx := &fakeTxRunner{certs: certs, items: items, catalog: catalog, cats: cats, stock: stock}

	return &harness{
		engine:     workflow.NewEngine(tx, certs, items, depts),
		reconciler: workflow.NewReconciler(tx, certs, items, cats, locs),
		certs:      certs,
		items:      items,
		catalog:    catalog,
		cats:       cats,
		depts:      depts,
		locs:       locs,
		stock:      stock,
	}
}
