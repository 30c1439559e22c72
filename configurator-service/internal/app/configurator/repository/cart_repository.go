package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cartsCollection = "carts"

// Документы MongoDB; цены хранятся как Decimal128, _id равен user_id
type cartDocument struct {
	ID         string               `bson:"_id"`
	UserID     string               `bson:"user_id"`
	Version    int64                `bson:"version"`
	Items      []cartItemDocument   `bson:"items"`
	TotalPrice primitive.Decimal128 `bson:"total_price"`
	CreatedAt  time.Time            `bson:"created_at"`
	UpdatedAt  time.Time            `bson:"updated_at"`
}

type cartItemDocument struct {
	ID         string                   `bson:"id"`
	Product    cartProductDocument      `bson:"product"`
	Quantity   int                      `bson:"quantity"`
	UnitPrice  primitive.Decimal128     `bson:"unit_price"`
	TotalPrice primitive.Decimal128     `bson:"total_price"`
	Options    []cartItemOptionDocument `bson:"options"`
	CreatedAt  time.Time                `bson:"created_at"`
	UpdatedAt  time.Time                `bson:"updated_at"`
}

type cartProductDocument struct {
	ID          string               `bson:"id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	CategoryID  string               `bson:"category_id"`
}

type cartItemOptionDocument struct {
	ID            string               `bson:"id"`
	OptionID      string               `bson:"option_id"`
	OptionGroupID string               `bson:"option_group_id"`
	Name          string               `bson:"name"`
	DisplayName   string               `bson:"display_name"`
	Price         primitive.Decimal128 `bson:"price"`
}

type cartRepository struct {
	collection *mongo.Collection
}

// NewCartRepository создает репозиторий корзин
// Индексы: уникальный по user_id и по updated_at для очистки старых корзин
func NewCartRepository(db *mongo.Database) CartRepository {
	collection := db.Collection(cartsCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("user_id_idx").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetName("updated_at_idx"),
		},
	})
	if err != nil {
		// Индексы могут уже существовать
		logger.Warn().Err(err).Str("collection", cartsCollection).Msg("Failed to create cart indexes")
	}

	return &cartRepository{collection: collection}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var doc cartDocument
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return doc.toEntity()
}

func (r *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	doc, err := newCartDocument(cart)
	if err != nil {
		return err
	}
	doc.Version = cart.Version + 1

	if cart.Version == 0 {
		// Параллельное создание упирается в уникальный _id
		if _, err := r.collection.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrCartConflict
			}
			return fmt.Errorf("failed to create cart: %w", err)
		}
		cart.Version = doc.Version
		return nil
	}

	result, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": doc.ID, "version": cart.Version},
		doc,
	)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrCartConflict
	}
	cart.Version = doc.Version
	return nil
}

func (r *cartRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID.String()})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (r *cartRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"updated_at": bson.M{"$lt": before}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale carts: %w", err)
	}
	return result.DeletedCount, nil
}

func newCartDocument(cart *entity.Cart) (*cartDocument, error) {
	total, err := toDecimal128(cart.TotalPrice)
	if err != nil {
		return nil, err
	}

	doc := &cartDocument{
		ID:         cart.UserID.String(),
		UserID:     cart.UserID.String(),
		Version:    cart.Version,
		Items:      make([]cartItemDocument, 0, len(cart.Items)),
		TotalPrice: total,
		CreatedAt:  cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
	}

	for _, item := range cart.Items {
		itemDoc, err := newCartItemDocument(item)
		if err != nil {
			return nil, err
		}
		doc.Items = append(doc.Items, *itemDoc)
	}

	return doc, nil
}

func newCartItemDocument(item entity.CartItem) (*cartItemDocument, error) {
	unit, err := toDecimal128(item.UnitPrice)
	if err != nil {
		return nil, err
	}
	itemTotal, err := toDecimal128(item.TotalPrice)
	if err != nil {
		return nil, err
	}
	productPrice, err := toDecimal128(item.Product.Price)
	if err != nil {
		return nil, err
	}

	itemDoc := &cartItemDocument{
		ID: item.ID.String(),
		Product: cartProductDocument{
			ID:          item.ProductID.String(),
			Name:        item.Product.Name,
			Description: item.Product.Description,
			Price:       productPrice,
			CategoryID:  item.Product.CategoryID.String(),
		},
		Quantity:   item.Quantity,
		UnitPrice:  unit,
		TotalPrice: itemTotal,
		Options:    make([]cartItemOptionDocument, 0, len(item.ItemOptions)),
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
	for _, opt := range item.ItemOptions {
		price, err := toDecimal128(opt.Option.Price)
		if err != nil {
			return nil, err
		}
		itemDoc.Options = append(itemDoc.Options, cartItemOptionDocument{
			ID:            opt.ID.String(),
			OptionID:      opt.OptionID.String(),
			OptionGroupID: opt.Option.OptionGroupID.String(),
			Name:          opt.Option.Name,
			DisplayName:   opt.Option.DisplayName,
			Price:         price,
		})
	}
	return itemDoc, nil
}

func (d *cartDocument) toEntity() (*entity.Cart, error) {
	cart := &entity.Cart{
		Version:   d.Version,
		Items:     make([]entity.CartItem, 0, len(d.Items)),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}

	var err error
	if cart.ID, err = uuid.Parse(d.ID); err != nil {
		return nil, fmt.Errorf("invalid cart id %q: %w", d.ID, err)
	}
	if cart.UserID, err = uuid.Parse(d.UserID); err != nil {
		return nil, fmt.Errorf("invalid cart user id %q: %w", d.UserID, err)
	}
	if cart.TotalPrice, err = fromDecimal128(d.TotalPrice); err != nil {
		return nil, err
	}

	for _, itemDoc := range d.Items {
		item, err := itemDoc.toEntity()
		if err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, *item)
	}

	return cart, nil
}

func (d *cartItemDocument) toEntity() (*entity.CartItem, error) {
	item := &entity.CartItem{
		Product: entity.CartProduct{
			Name:        d.Product.Name,
			Description: d.Product.Description,
		},
		Quantity:    d.Quantity,
		ItemOptions: make([]entity.CartItemOption, 0, len(d.Options)),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}

	var err error
	if item.ID, err = uuid.Parse(d.ID); err != nil {
		return nil, fmt.Errorf("invalid cart item id %q: %w", d.ID, err)
	}
	if item.ProductID, err = uuid.Parse(d.Product.ID); err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", d.Product.ID, err)
	}
	item.Product.ID = item.ProductID
	if item.Product.CategoryID, err = uuid.Parse(d.Product.CategoryID); err != nil {
		return nil, fmt.Errorf("invalid category id %q: %w", d.Product.CategoryID, err)
	}
	if item.Product.Price, err = fromDecimal128(d.Product.Price); err != nil {
		return nil, err
	}
	if item.UnitPrice, err = fromDecimal128(d.UnitPrice); err != nil {
		return nil, err
	}
	if item.TotalPrice, err = fromDecimal128(d.TotalPrice); err != nil {
		return nil, err
	}

	for _, optDoc := range d.Options {
		opt := entity.CartItemOption{
			Option: entity.CartOption{
				Name:        optDoc.Name,
				DisplayName: optDoc.DisplayName,
			},
		}
		if opt.ID, err = uuid.Parse(optDoc.ID); err != nil {
			return nil, fmt.Errorf("invalid cart item option id %q: %w", optDoc.ID, err)
		}
		if opt.OptionID, err = uuid.Parse(optDoc.OptionID); err != nil {
			return nil, fmt.Errorf("invalid option id %q: %w", optDoc.OptionID, err)
		}
		opt.Option.ID = opt.OptionID
		if opt.Option.OptionGroupID, err = uuid.Parse(optDoc.OptionGroupID); err != nil {
			return nil, fmt.Errorf("invalid option group id %q: %w", optDoc.OptionGroupID, err)
		}
		if opt.Option.Price, err = fromDecimal128(optDoc.Price); err != nil {
			return nil, err
		}
		item.ItemOptions = append(item.ItemOptions, opt)
	}

	return item, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	value, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert price %s: %w", d.String(), err)
	}
	return value, nil
}

func fromDecimal128(value primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse stored price %s: %w", value.String(), err)
	}
	return d, nil
}
