package main

import (
	"context"
	"os"
	"strconv"

	"aguagestor/cmd/internal/domain/policy"
	"aguagestor/cmd/internal/domain/sqlite"
	"aguagestor/cmd/internal/domain/sqlite/repository"
	handler2 "aguagestor/cmd/internal/http/handler"
	authmw "aguagestor/cmd/internal/http/middleware"
	"aguagestor/cmd/internal/infrastructure/aws/storage"
	"aguagestor/cmd/internal/infrastructure/minhareceita"
	"aguagestor/cmd/internal/service"
	"aguagestor/cmd/internal/service/jobs"
	"aguagestor/cmd/internal/utils"
	"aguagestor/cmd/internal/utils/uid"
	"aguagestor/cmd/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/aguagestor/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	// Init SQLite
	db, err := sqlite.Init(os.Getenv("SQLITE_PATH"))
	if err != nil {
		panic(err)
	}

	machineID, _ := strconv.ParseInt(os.Getenv("MACHINE_ID"), 10, 64)
	uid.Init(machineID)

	if err := utils.InitJWKS(os.Getenv("JWKS_URL")); err != nil {
		panic(err)
	}

	// Init S3 client
	s3Client, err := storage.NewStorageClient()
	if err != nil {
		panic(err)
	}

	receitaClient := minhareceita.NewClient()

	// Gettings repos
	partnerRepo := repository.NewPartnerRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)

	// Getting services
	partnerService := service.NewPartnerService(partnerRepo, validate)
	brandService := service.NewBrandService(brandRepo, partnerRepo, validate)
	storeService := service.NewStoreService(storeRepo, brandRepo, validate)
	mergeService := service.NewMergeService(storeRepo, validate)
	importService := service.NewImportService(partnerRepo, brandRepo, storeRepo)
	voucherService := service.NewVoucherService(voucherRepo, storeRepo, s3Client, validate)
	userService := service.NewUserService(userRepo, policy.NewUserPolicy(), validate)
	utilService := service.NewUtilService(companyRepo, receitaClient)

	// Gettings handler
	partnerRoutes := handler2.NewPartnerRoute(partnerService)
	brandRoutes := handler2.NewBrandRoute(brandService)
	storeRoutes := handler2.NewStoreRoute(storeService, mergeService)
	importRoutes := handler2.NewImportRoute(importService)
	voucherRoutes := handler2.NewVoucherRoute(voucherService)
	userRoutes := handler2.NewUserRoute(userService)
	utilRoutes := handler2.NewUtilRoute(utilService)

	// Background crons
	ctx := context.Background()
	go jobs.NewCompanyCacheCleaner(companyRepo).Start(ctx)
	go jobs.NewVoucherExpirer(voucherRepo).Start(ctx)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("30M"))

	auth := authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{UserRepo: userRepo})
	api := e.Group("/api", auth)

	// Partners
	api.GET("/partners", partnerRoutes.GetPartners)
	api.GET("/partners/:id", partnerRoutes.GetPartner)
	api.POST("/partners", partnerRoutes.CreatePartner)
	api.PATCH("/partners/:id", partnerRoutes.UpdatePartner)

	// Brands
	api.GET("/brands", brandRoutes.GetBrands)
	api.POST("/brands", brandRoutes.CreateBrand)
	api.PATCH("/brands/:id", brandRoutes.UpdateBrand)

	// Stores (the /stores/duplicates and /stores/merge routes must be
	// registered before /stores/:id so echo does not swallow them)
	api.GET("/stores/duplicates", storeRoutes.GetDuplicates)
	api.POST("/stores/merge", storeRoutes.MergeStores)
	api.GET("/stores", storeRoutes.GetStores)
	api.GET("/stores/:id", storeRoutes.GetStore)
	api.POST("/stores", storeRoutes.CreateStore)
	api.PATCH("/stores/:id", storeRoutes.UpdateStore)
	api.DELETE("/stores/:id", storeRoutes.DeactivateStore)
	api.PUT("/stores/:id/prices", storeRoutes.ReplacePrices)
	api.GET("/stores/:id/vouchers", voucherRoutes.GetStoreVouchers)

	// Imports
	api.POST("/imports", importRoutes.RunImport)

	// Vouchers
	api.POST("/vouchers", voucherRoutes.CreateVoucher)
	api.PATCH("/vouchers/:id", voucherRoutes.UpdateVoucher)

	// Users
	api.GET("/users", userRoutes.GetUsers)
	api.GET("/users/me", userRoutes.GetSelf)
	api.GET("/users/:id", userRoutes.GetUser)
	api.POST("/users", userRoutes.CreateUser)
	api.PATCH("/users/:id", userRoutes.UpdateUser)
	api.DELETE("/users/:id", userRoutes.DeleteUser)

	// Lookups
	api.GET("/companies/:cnpj", utilRoutes.GetCompany)
	api.GET("/products", utilRoutes.GetProductTypes)

	// Docker Compose healthcheck
	e.GET("/health", utilRoutes.Health)

	if err := e.Start(":7070"); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("cnpj", validators.CNPJ)
	_ = validate.RegisterValidation("uf", validators.UF)
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}
