package service

import (
	"context"
	"time"

	"omni_inbox/internal/common"
	"omni_inbox/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpdateData là cấu trúc để xây dựng các phép toán update của MongoDB.
// Các trường nil sẽ được bỏ qua khi serialize nhờ omitempty.
type UpdateData struct {
	Set         map[string]interface{} `bson:"$set,omitempty"`         // Cập nhật giá trị
	SetOnInsert map[string]interface{} `bson:"$setOnInsert,omitempty"` // Chỉ set khi insert (upsert)
	Unset       map[string]interface{} `bson:"$unset,omitempty"`       // Xóa field
	Inc         map[string]interface{} `bson:"$inc,omitempty"`         // Tăng/giảm giá trị số nguyên tử
}

// ToUpdateData chuyển một map dữ liệu thường thành UpdateData với phép toán $set
func ToUpdateData(data map[string]interface{}) *UpdateData {
	return &UpdateData{
		Set: data,
	}
}

// BaseServiceMongo định nghĩa các thao tác cơ bản trên một collection MongoDB
// cho model kiểu T. Các service nghiệp vụ embed implementation của interface này.
type BaseServiceMongo[T any] interface {
	InsertOne(ctx context.Context, data T) (T, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update *UpdateData, opts *options.FindOneAndUpdateOptions) (T, error)
	FindOneAndDelete(ctx context.Context, filter interface{}) (T, error)
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error)
	Collection() *mongo.Collection
}

// BaseServiceMongoImpl là implementation chuẩn của BaseServiceMongo
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo base service trên một collection
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
	}
}

// Collection trả về collection mà service đang thao tác
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// InsertOne thêm một document mới vào collection.
// Model được chuyển thành map, loại bỏ các chuỗi rỗng, gắn createdAt/updatedAt
// theo UnixMilli, sau đó đọc lại document vừa tạo để trả về đầy đủ.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	// Loại bỏ các trường chuỗi rỗng để không ghi giá trị vô nghĩa
	for key, value := range dataMap {
		if str, ok := value.(string); ok && str == "" {
			delete(dataMap, key)
		}
	}

	now := time.Now().UnixMilli()
	dataMap["createdAt"] = now
	dataMap["updatedAt"] = now

	result, err := s.collection.InsertOne(ctx, dataMap)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	// Đọc lại document vừa tạo
	var created T
	err = s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&created)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	return created, nil
}

// FindOne tìm một document theo filter.
// Trả về common.ErrNotFound nếu không có document nào khớp.
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero T

	var result T
	err := s.collection.FindOne(ctx, filter, opts).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}

	return result, nil
}

// Find tìm nhiều document theo filter.
// Luôn trả về slice (rỗng nếu không có kết quả), không trả về nil.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return results, nil
}

// FindOneAndUpdate cập nhật một document và trả về bản sau khi cập nhật.
// Luôn gắn updatedAt mới. Trả về common.ErrNotFound nếu không khớp filter.
// Thao tác là nguyên tử trên server nên an toàn với các phép $inc và reset.
func (s *BaseServiceMongoImpl[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, update *UpdateData, opts *options.FindOneAndUpdateOptions) (T, error) {
	var zero T

	if update == nil {
		update = &UpdateData{}
	}
	if update.Set == nil {
		update.Set = map[string]interface{}{}
	}
	update.Set["updatedAt"] = time.Now().UnixMilli()

	if opts == nil {
		opts = options.FindOneAndUpdate()
	}
	if opts.ReturnDocument == nil {
		opts.SetReturnDocument(options.After)
	}

	var result T
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}

	return result, nil
}

// FindOneAndDelete xóa một document và trả về bản trước khi xóa.
// Trả về common.ErrNotFound nếu không có document nào khớp filter.
func (s *BaseServiceMongoImpl[T]) FindOneAndDelete(ctx context.Context, filter interface{}) (T, error) {
	var zero T

	var result T
	err := s.collection.FindOneAndDelete(ctx, filter).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}

	return result, nil
}

// DeleteMany xóa nhiều document theo filter, trả về số lượng đã xóa
func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}

	return result.DeletedCount, nil
}

// CountDocuments đếm số document khớp filter
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}

	return count, nil
}

// Distinct trả về danh sách giá trị duy nhất của một field theo filter
func (s *BaseServiceMongoImpl[T]) Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error) {
	values, err := s.collection.Distinct(ctx, fieldName, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return values, nil
}
