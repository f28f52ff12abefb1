package paymentpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName                          = "pizzeria.payment.PaymentGateway"
	PaymentGateway_Charge_FullMethodName = "/" + ServiceName + "/Charge"
)

type ChargeRequest struct {
	OrderId      string  `json:"orderId"`
	CustomerName string  `json:"customerName"`
	Amount       float64 `json:"amount"`
}

func (x *ChargeRequest) GetOrderId() string {
	if x != nil {
		return x.OrderId
	}
	return ""
}

func (x *ChargeRequest) GetCustomerName() string {
	if x != nil {
		return x.CustomerName
	}
	return ""
}

func (x *ChargeRequest) GetAmount() float64 {
	if x != nil {
		return x.Amount
	}
	return 0
}

type ChargeResponse struct {
	TransactionId string `json:"transactionId,omitempty"`
	Success       bool   `json:"success"`
	Message       string `json:"message"`
}

func (x *ChargeResponse) GetTransactionId() string {
	if x != nil {
		return x.TransactionId
	}
	return ""
}

func (x *ChargeResponse) GetSuccess() bool {
	if x != nil {
		return x.Success
	}
	return false
}

func (x *ChargeResponse) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

// PaymentGatewayClient is the client API for the PaymentGateway service.
type PaymentGatewayClient interface {
	Charge(ctx context.Context, in *ChargeRequest, opts ...grpc.CallOption) (*ChargeResponse, error)
}

type paymentGatewayClient struct {
	cc grpc.ClientConnInterface
}

func NewPaymentGatewayClient(cc grpc.ClientConnInterface) PaymentGatewayClient {
	return &paymentGatewayClient{cc}
}

func (c *paymentGatewayClient) Charge(ctx context.Context, in *ChargeRequest, opts ...grpc.CallOption) (*ChargeResponse, error) {
	out := new(ChargeResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, PaymentGateway_Charge_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// PaymentGatewayServer is the server API for the PaymentGateway service.
type PaymentGatewayServer interface {
	Charge(context.Context, *ChargeRequest) (*ChargeResponse, error)
}

// UnimplementedPaymentGatewayServer can be embedded to have forward compatible implementations.
type UnimplementedPaymentGatewayServer struct{}

func (UnimplementedPaymentGatewayServer) Charge(context.Context, *ChargeRequest) (*ChargeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Charge not implemented")
}

func RegisterPaymentGatewayServer(s grpc.ServiceRegistrar, srv PaymentGatewayServer) {
	s.RegisterService(&PaymentGateway_ServiceDesc, srv)
}

func _PaymentGateway_Charge_Handler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(ChargeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PaymentGatewayServer).Charge(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PaymentGateway_Charge_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PaymentGatewayServer).Charge(ctx, req.(*ChargeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// PaymentGateway_ServiceDesc is the grpc.ServiceDesc for the PaymentGateway service.
var PaymentGateway_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PaymentGatewayServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Charge",
			Handler:    _PaymentGateway_Charge_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
}
