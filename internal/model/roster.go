package model

// SupplierRosterRow maps the supplier_roster table read by the database
// dataset provider
type SupplierRosterRow struct {
	ID               uint    `gorm:"primaryKey"`
	SupplierID       string  `gorm:"type:varchar(50);uniqueIndex"`
	SupplierName     string  `gorm:"type:varchar(100);index;not null"`
	TotalDeliveries  int     `gorm:"default:0"`
	OnTimeDeliveries int     `gorm:"default:0"`
	AvgLeadTimeDays  float64 `gorm:"default:0"`
	PriceIndex       float64 `gorm:"default:0"`
	Priority         string  `gorm:"type:varchar(20)"`
	IsBackup         bool    `gorm:"default:false"`
}

// TableName overrides the gorm default
func (SupplierRosterRow) TableName() string { return "supplier_roster" }

// InventoryLedgerRow maps the inventory_ledger table
type InventoryLedgerRow struct {
	ID              uint     `gorm:"primaryKey"`
	Material        string   `gorm:"type:varchar(100);index;not null"`
	CurrentStock    float64  `gorm:"default:0"`
	SafetyStock     float64  `gorm:"default:0"`
	AvgDailyUsage   float64  `gorm:"default:0"`
	PrimarySupplier string   `gorm:"type:varchar(100)"`
	BackupSupplier  string   `gorm:"type:varchar(100)"`
	LeadTimeDays    *float64 // NULL means no override
}

// TableName overrides the gorm default
func (InventoryLedgerRow) TableName() string { return "inventory_ledger" }
