package main

import (
	"fmt"
	"time"

	"github.com/shopadmin-next/internal/config"
	"github.com/shopadmin-next/internal/logger"
	"github.com/shopadmin-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{
			Slug:        "electronics",
			Name:        "电子产品",
			Description: "耳机、手表等电子产品",
			SortOrder:   300,
		},
		{
			Slug:        "lifestyle",
			Name:        "生活用品",
			Description: "背包、生活周边",
			SortOrder:   200,
		},
		{
			Slug:        "accessories",
			Name:        "数码配件",
			Description: "充电宝、数据线等配件",
			SortOrder:   100,
		},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"electronics", "lifestyle", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	electronicsID := categoryIDs["electronics"]
	lifestyleID := categoryIDs["lifestyle"]
	accessoriesID := categoryIDs["accessories"]

	// 添加商品
	products := []models.Product{
		{
			Slug:        "wireless-earphones",
			Name:        "无线蓝牙耳机",
			Description: "高品质音质，长续航，舒适佩戴",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			ImageURL:    "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800",
			CategoryID:  electronicsID,
			Stock:       120,
			IsActive:    true,
		},
		{
			Slug:        "smart-watch",
			Name:        "智能手表",
			Description: "健康监测，运动追踪，消息提醒",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(199.99)),
			ImageURL:    "https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800",
			CategoryID:  electronicsID,
			Stock:       60,
			IsActive:    true,
		},
		{
			Slug:        "power-bank",
			Name:        "便携充电宝",
			Description: "大容量，快速充电，多设备兼容",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(49.99)),
			ImageURL:    "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800",
			CategoryID:  accessoriesID,
			Stock:       200,
			IsActive:    true,
		},
		{
			Slug:        "backpack",
			Name:        "多功能背包",
			Description: "大容量，防水防盗，USB充电接口",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(79.99)),
			ImageURL:    "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800",
			CategoryID:  lifestyleID,
			Stock:       80,
			IsActive:    true,
		},
		{
			Slug:        "usb-c-cable",
			Name:        "USB-C 数据线",
			Description: "编织线身，支持快充与数据传输",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(9.99)),
			ImageURL:    "https://images.unsplash.com/photo-1512499617640-c74ae3a79d37?w=800",
			CategoryID:  accessoriesID,
			Stock:       500,
			IsActive:    true,
		},
		{
			Slug:        "mechanical-keyboard",
			Name:        "机械键盘",
			Description: "热插拔轴体，RGB 背光",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(129.00)),
			ImageURL:    "https://images.unsplash.com/photo-1511467687858-23d96c32e4ae?w=800",
			CategoryID:  electronicsID,
			Stock:       0,
			IsActive:    false,
		},
	}

	for _, prod := range products {
		if prod.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", prod.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", prod.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Slug)
			}
		} else {
			existing.Name = prod.Name
			existing.Description = prod.Description
			existing.Price = prod.Price
			existing.ImageURL = prod.ImageURL
			existing.CategoryID = prod.CategoryID
			existing.Stock = prod.Stock
			existing.IsActive = prod.IsActive
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Slug)
			}
		}
	}

	// 添加客户
	customers := []models.Customer{
		{
			Name:    "张伟",
			Email:   "zhang.wei@example.com",
			Phone:   "+86 138 0000 0001",
			Address: "上海市浦东新区世纪大道 100 号",
		},
		{
			Name:    "李娜",
			Email:   "li.na@example.com",
			Phone:   "+86 138 0000 0002",
			Address: "北京市朝阳区建国路 88 号",
		},
		{
			Name:  "Alice Johnson",
			Email: "alice@example.com",
		},
	}

	for _, cust := range customers {
		var existing models.Customer
		if err := models.DB.Where("email = ?", cust.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cust).Error; err != nil {
				stdLog.Printf("Failed to create customer %s: %v", cust.Email, err)
			} else {
				stdLog.Printf("Created customer: %s", cust.Email)
			}
		} else {
			stdLog.Printf("Customer already exists: %s", cust.Email)
		}
	}

	// 添加营销活动（覆盖两种折扣类型与两种触发条件）
	now := time.Now()
	springStart := now.Add(-24 * time.Hour)
	springEnd := now.AddDate(0, 2, 0)
	flashStart := now.Add(-2 * time.Hour)
	flashEnd := now.AddDate(0, 0, 7)
	expiredStart := now.AddDate(0, -2, 0)
	expiredEnd := now.AddDate(0, -1, 0)

	campaigns := []models.Campaign{
		{
			Title:          "春季满额九折",
			Description:    "订单小计满 100 美元即享 10% 折扣",
			DiscountType:   models.CampaignDiscountPercentage,
			DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			ConditionType:  models.CampaignConditionAmount,
			ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
			CouponPrefix:   "SPRING",
			IsActive:       true,
			StartsAt:       &springStart,
			EndsAt:         &springEnd,
		},
		{
			Title:          "多件立减",
			Description:    "单笔订单满 3 件立减 15 美元",
			DiscountType:   models.CampaignDiscountFixed,
			DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
			ConditionType:  models.CampaignConditionQuantity,
			ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(3)),
			CouponPrefix:   "BULK",
			IsActive:       true,
		},
		{
			Title:          "闪购限时折扣",
			Description:    "限时 7 天，满 200 美元享 15% 折扣",
			DiscountType:   models.CampaignDiscountPercentage,
			DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
			ConditionType:  models.CampaignConditionAmount,
			ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(200)),
			CouponPrefix:   "FLASH",
			IsActive:       true,
			StartsAt:       &flashStart,
			EndsAt:         &flashEnd,
		},
		{
			Title:          "已结束的活动",
			Description:    "用于演示时间窗口之外的活动不再触发",
			DiscountType:   models.CampaignDiscountFixed,
			DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
			ConditionType:  models.CampaignConditionQuantity,
			ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(2)),
			CouponPrefix:   "PAST",
			IsActive:       true,
			StartsAt:       &expiredStart,
			EndsAt:         &expiredEnd,
		},
		{
			Title:          "已停用的活动",
			Description:    "用于演示后台启停控制",
			DiscountType:   models.CampaignDiscountPercentage,
			DiscountValue:  models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
			ConditionType:  models.CampaignConditionAmount,
			ConditionValue: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			CouponPrefix:   "OFF",
			IsActive:       false,
		},
	}

	for _, camp := range campaigns {
		var existing models.Campaign
		if err := models.DB.Where("title = ?", camp.Title).First(&existing).Error; err != nil {
			if err := models.DB.Select("*").Create(&camp).Error; err != nil {
				stdLog.Printf("Failed to create campaign %s: %v", camp.Title, err)
			} else {
				stdLog.Printf("Created campaign: %s", camp.Title)
			}
		} else {
			existing.Description = camp.Description
			existing.DiscountType = camp.DiscountType
			existing.DiscountValue = camp.DiscountValue
			existing.ConditionType = camp.ConditionType
			existing.ConditionValue = camp.ConditionValue
			existing.CouponPrefix = camp.CouponPrefix
			existing.IsActive = camp.IsActive
			existing.StartsAt = camp.StartsAt
			existing.EndsAt = camp.EndsAt
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update campaign %s: %v", camp.Title, err)
			} else {
				stdLog.Printf("Updated campaign: %s", camp.Title)
			}
		}
	}

	fmt.Println("\n✅ Test data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Categories")
	fmt.Println("- 6 Products")
	fmt.Println("- 3 Customers")
	fmt.Println("- 5 Campaigns (percentage/fixed × amount/quantity)")
}
